// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/go-item-custody/models"
)

var aboutLabelStyle = lipgloss.NewStyle().Bold(true).Width(13)

// renderAbout draws the build information of the client.
func renderAbout(info models.AppBuildInfo) string {
	rows := [][2]string{
		{"Application", "item custody client"},
		{"Version", info.BuildVersion()},
		{"Date", info.BuildDate()},
		{"Commit", info.BuildCommit()},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		value := strings.TrimSpace(row[1])
		if value == "" {
			value = "N/A"
		}
		lines = append(lines, fmt.Sprintf("%s%s", aboutLabelStyle.Render(row[0]+":"), value))
	}

	return overlayBoxStyle.Render(renderPage("ABOUT", strings.Join(lines, "\n"), "esc: back"))
}
