package services

import (
	"fmt"

	"gastozap/internal/core"
)

// Fixed user-facing texts. Wording is part of the product surface and
// mirrors what users already know.
const (
	replyUnrecognized = `❌ Não entendi sua mensagem. Envie por exemplo: "gastei 25 no mercado" ou "relatório semanal".`
	replyParseFailure = `❌ Não consegui entender o valor. Envie por exemplo: "gastei 25 no mercado".`

	emptyDaily   = "📊 Nenhum gasto registrado hoje 💤"
	emptyWeekly  = "📊 Nenhum gasto registrado entre domingo e hoje 💤"
	emptyMonthly = "📊 Nenhum gasto registrado neste mês 💤"
	emptyGeneral = "📊 Nenhum gasto encontrado para você ainda 😬"
)

func replyRecorded(rec core.ExpenseRecord) string {
	return fmt.Sprintf("✅ Gasto registrado com sucesso!\n💰 Valor: R$ %s\n📂 Categoria: %s\n📅 Data: %s",
		rec.Amount.Format(), rec.Category, rec.Date.ISO())
}

// reportKindLabel names the window in the report header.
func reportKindLabel(intent core.Intent) string {
	switch intent {
	case core.ReportDaily:
		return "diário (hoje)"
	case core.ReportWeekly:
		return "semanal (domingo a hoje)"
	case core.ReportMonthly:
		return "mensal (1º até hoje)"
	default:
		return "geral"
	}
}

func emptyReportReply(intent core.Intent) string {
	switch intent {
	case core.ReportDaily:
		return emptyDaily
	case core.ReportWeekly:
		return emptyWeekly
	case core.ReportMonthly:
		return emptyMonthly
	default:
		return emptyGeneral
	}
}
