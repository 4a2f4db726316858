package contracts

import "Fluxo/internal/domain/report"

type MonthlyReportResponse struct {
	Report *report.MonthlyReport `json:"report"`
}

type YearlyReportResponse struct {
	Report *report.YearlyReport `json:"report"`
}

type CategoryReportResponse struct {
	Report *report.CategoryReport `json:"report"`
}

type BackupImportResponse struct {
	Message      string `json:"message"`
	Transactions int    `json:"transactions"`
	Categories   int    `json:"categories"`
	Recurring    int    `json:"recurring"`
	Debts        int    `json:"debts"`
	Cards        int    `json:"cards"`
	BudgetGoals  int    `json:"budgetGoals"`
}
