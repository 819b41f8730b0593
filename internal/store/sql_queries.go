package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-item-custody/models"
)

var (
	usersTable    = models.User{}.TableName()
	itemsTable    = models.Item{}.TableName()
	sendingsTable = models.Sending{}.TableName()

	userColumns    = []string{"id", "login", "password", "token", "token_expired_at"}
	itemColumns    = []string{"id", "user_id", "name"}
	sendingColumns = []string{"id", "item_id", "from_user_id", "to_user_id", "item_token"}
)

func statementBuilder(ph sq.PlaceholderFormat) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(ph)
}

// users

func buildInsertUserQuery(ph sq.PlaceholderFormat, user models.User) (string, []any, error) {
	return statementBuilder(ph).
		Insert(usersTable).
		Columns("login", "password").
		Values(user.Login, user.Password).
		Suffix("RETURNING id").
		ToSql()
}

// buildUpdateTokenQuery matches login and password digest in the WHERE
// clause, so credential check and token issue are one statement.
func buildUpdateTokenQuery(ph sq.PlaceholderFormat, login, password, token string, expiresAt time.Time) (string, []any, error) {
	return statementBuilder(ph).
		Update(usersTable).
		Set("token", token).
		Set("token_expired_at", expiresAt).
		Where(sq.Eq{"login": login}).
		Where(sq.Eq{"password": password}).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectUserByTokenQuery(ph sq.PlaceholderFormat, token string) (string, []any, error) {
	return statementBuilder(ph).
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"token": token}).
		ToSql()
}

func buildSelectUserByLoginQuery(ph sq.PlaceholderFormat, login string) (string, []any, error) {
	return statementBuilder(ph).
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"login": login}).
		ToSql()
}

// items

func buildInsertItemQuery(ph sq.PlaceholderFormat, item models.Item) (string, []any, error) {
	return statementBuilder(ph).
		Insert(itemsTable).
		Columns("user_id", "name").
		Values(item.OwnerID, item.Name).
		Suffix("RETURNING id").
		ToSql()
}

func buildSelectItemQuery(ph sq.PlaceholderFormat, id int64) (string, []any, error) {
	return statementBuilder(ph).
		Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSelectItemsByOwnerQuery(ph sq.PlaceholderFormat, ownerID int64) (string, []any, error) {
	return statementBuilder(ph).
		Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"user_id": ownerID}).
		OrderBy("id ASC").
		ToSql()
}

func buildDeleteItemQuery(ph sq.PlaceholderFormat, ownerID, id int64) (string, []any, error) {
	return statementBuilder(ph).
		Delete(itemsTable).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": ownerID}).
		ToSql()
}

func buildTransferOwnerQuery(ph sq.PlaceholderFormat, id, expectedOwner, newOwner int64) (string, []any, error) {
	return statementBuilder(ph).
		Update(itemsTable).
		Set("user_id", newOwner).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": expectedOwner}).
		ToSql()
}

// sendings

func buildSelectItemTokenQuery(ph sq.PlaceholderFormat, itemID, fromUserID, toUserID int64) (string, []any, error) {
	return statementBuilder(ph).
		Select("item_token").
		From(sendingsTable).
		Where(sq.Eq{"item_id": itemID}).
		Where(sq.Eq{"from_user_id": fromUserID}).
		Where(sq.Eq{"to_user_id": toUserID}).
		ToSql()
}

// buildInsertSendingQuery yields no row when a sending for the same triple
// already exists.
func buildInsertSendingQuery(ph sq.PlaceholderFormat, sending models.Sending) (string, []any, error) {
	return statementBuilder(ph).
		Insert(sendingsTable).
		Columns("item_id", "from_user_id", "to_user_id", "item_token").
		Values(sending.ItemID, sending.FromUserID, sending.ToUserID, sending.ItemToken).
		Suffix("ON CONFLICT (item_id, from_user_id, to_user_id) DO NOTHING RETURNING id").
		ToSql()
}

func buildSelectSendingByTokenQuery(ph sq.PlaceholderFormat, itemToken string, forUpdate bool) (string, []any, error) {
	query := statementBuilder(ph).
		Select(sendingColumns...).
		From(sendingsTable).
		Where(sq.Eq{"item_token": itemToken})

	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	return query.ToSql()
}

func buildDeleteSendingQuery(ph sq.PlaceholderFormat, id int64) (string, []any, error) {
	return statementBuilder(ph).
		Delete(sendingsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteItemSendingsQuery(ph sq.PlaceholderFormat, itemID int64) (string, []any, error) {
	return statementBuilder(ph).
		Delete(sendingsTable).
		Where(sq.Eq{"item_id": itemID}).
		ToSql()
}

func buildDeleteStaleSendingsQuery(ph sq.PlaceholderFormat, itemID, ownerID int64) (string, []any, error) {
	return statementBuilder(ph).
		Delete(sendingsTable).
		Where(sq.Eq{"item_id": itemID}).
		Where(sq.NotEq{"from_user_id": ownerID}).
		ToSql()
}
