package infrastructure

import (
	"Fluxo/config"
	"Fluxo/internal/domain/budget"
	"Fluxo/internal/domain/creditcard"
	"Fluxo/internal/domain/debt"
	"Fluxo/internal/domain/recurring"
	"Fluxo/internal/domain/transaction"
	"Fluxo/internal/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewDb(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN())
	default:
		dialector = sqlite.Open(cfg.Database.Path)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logger.Error().
			Err(err).
			Str("driver", cfg.Database.Driver).
			Msg("Falha ao conectar ao banco de dados")
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error().Err(err).Msg("Falha ao obter instância do banco de dados")
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Msg("Conexão com banco de dados estabelecida com sucesso")

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

func runMigrations(db *gorm.DB) error {
	logger.Info().Msg("Executando migrations...")

	entities := []interface{}{
		&transaction.Transaction{},
		&transaction.Category{},
		&recurring.RecurringTransaction{},
		&debt.Debt{},
		&creditcard.CreditCard{},
		&creditcard.CardCharge{},
		&creditcard.InvoicePayment{},
		&budget.BudgetGoal{},
	}

	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			logger.Error().
				Err(err).
				Str("entity", getEntityName(entity)).
				Msg("Erro ao migrar entidade")
			return err
		}
	}

	logger.Info().Msg("Migrations executadas com sucesso!")
	return nil
}

func getEntityName(entity interface{}) string {
	switch entity.(type) {
	case *transaction.Transaction:
		return "Transaction"
	case *transaction.Category:
		return "Category"
	case *recurring.RecurringTransaction:
		return "RecurringTransaction"
	case *debt.Debt:
		return "Debt"
	case *creditcard.CreditCard:
		return "CreditCard"
	case *creditcard.CardCharge:
		return "CardCharge"
	case *creditcard.InvoicePayment:
		return "InvoicePayment"
	case *budget.BudgetGoal:
		return "BudgetGoal"
	default:
		return "Unknown"
	}
}
