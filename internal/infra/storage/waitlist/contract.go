package waitlist

import "github.com/m04kA/SMC-FlightScheduler/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов (sql.DB, sql.Tx или обёртка с метриками)
type DBExecutor = dbmetrics.DBExecutor
