package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"grana/internal/model"
)

// RenderMonthlyMetrics formats the monthly view for the terminal.
func RenderMonthlyMetrics(m model.MonthlyMetrics) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Resumo do mes"))
	b.WriteString("\n")

	balanceStyle := SuccessStyle
	if m.CurrentBalance < 0 {
		balanceStyle = ErrorStyle
	}
	projStyle := SuccessStyle
	if m.Forecast.ProjectedBalance < 0 {
		projStyle = ErrorStyle
	}

	rows := []string{
		fmt.Sprintf("%s %s", BoldStyle.Render("Saldo atual:"), balanceStyle.Render(fmt.Sprintf("R$ %.2f", m.CurrentBalance))),
		fmt.Sprintf("%s R$ %.2f", BoldStyle.Render("Entradas no mes:"), m.MonthIncome),
		fmt.Sprintf("%s R$ %.2f", BoldStyle.Render("Saidas no mes:"), m.MonthExpenses),
		fmt.Sprintf("%s R$ %.2f/dia", BoldStyle.Render("Ritmo de gasto:"), m.BurnRate),
		fmt.Sprintf("%s %s", BoldStyle.Render("Saldo projetado:"), projStyle.Render(fmt.Sprintf("R$ %.2f", m.Forecast.ProjectedBalance))),
	}
	if m.BleedingRate > 0 {
		rows = append(rows, WarningStyle.Render(
			fmt.Sprintf("Gastando R$ %.2f/dia acima do que a renda sustenta", m.BleedingRate)))
	}
	if m.Forecast.WillGoNegative && !m.Forecast.CrossingDate.IsZero() {
		rows = append(rows, ErrorStyle.Render(
			fmt.Sprintf("Saldo deve zerar por volta de %s", m.Forecast.CrossingDate.Format("02/01"))))
	}

	b.WriteString(strings.Join(rows, "\n"))
	return BoxStyle.Render(b.String())
}

// RenderAlerts formats the synthesized alert list, most severe first.
func RenderAlerts(alerts []model.Alert) string {
	if len(alerts) == 0 {
		return SuccessStyle.Render("Nenhum alerta. Tudo sob controle.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Alertas (%d)", len(alerts))))
	b.WriteString("\n")

	for _, alert := range alerts {
		style := severityStyle(alert.Severity)
		marker := "!"
		if !alert.Dismissible {
			marker = "!!"
		}
		b.WriteString(fmt.Sprintf("%s %s\n  %s\n",
			style.Render(fmt.Sprintf("[%s]%s", alert.Severity, marker)),
			BoldStyle.Render(alert.Title),
			SubtleStyle.Render(alert.Message)))
	}
	return b.String()
}

// RenderAutoLimits formats the suggested limits table.
func RenderAutoLimits(limits map[model.Category]model.AutoLimit, order []model.Category) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Limites sugeridos"))
	b.WriteString("\n")

	for _, category := range order {
		limit, ok := limits[category]
		if !ok {
			continue
		}
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(category.DisplayColor())).Render(string(category))
		line := fmt.Sprintf("%-28s mensal R$ %8.2f  semanal R$ %7.2f  (%s)",
			label, limit.MonthlyLimit, limit.WeeklyLimit, limit.Confidence)
		if limit.IsProtected {
			line += SubtleStyle.Render("  protegida")
		}
		if limit.HasDailyLimit {
			line += WarningStyle.Render(fmt.Sprintf("  diario R$ %.2f", limit.DailyLimit))
		}
		b.WriteString(line + "\n")

		if limit.Behavioral != nil && limit.Behavioral.NightPurchaseBan {
			b.WriteString(SubtleStyle.Render("  sem compras depois das 20h") + "\n")
		}
	}
	return b.String()
}

func severityStyle(s model.Severity) lipgloss.Style {
	switch s {
	case model.SeverityCritical:
		return ErrorStyle
	case model.SeverityHigh:
		return WarningStyle
	default:
		return SubtleStyle
	}
}
