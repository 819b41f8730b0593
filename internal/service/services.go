package service

import (
	"github.com/MKhiriev/go-item-custody/internal/config"
	"github.com/MKhiriev/go-item-custody/internal/logger"
	"github.com/MKhiriev/go-item-custody/internal/store"
	"github.com/MKhiriev/go-item-custody/models"
)

// Services bundles the domain services handed to the transport layer.
type Services struct {
	AuthService     AuthService
	ItemService     ItemService
	TransferService TransferService
	AppInfoService  AppInfoService
}

// NewServices wires every service over the given storages.
func NewServices(storages *store.Storages, cfg config.App, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(storages.UserRepository, cfg, logger)
	itemService := NewItemService(storages.ItemRepository, storages.SendingRepository, storages.Transactor, logger)

	return &Services{
		AuthService:     authService,
		ItemService:     itemService,
		TransferService: NewTransferService(itemService, authService, storages.SendingRepository, storages.Transactor, logger),
		AppInfoService:  appInfoService,
	}, nil
}
