package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/roadwatch/internal/dbx"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/accidents"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/alerts"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/sensordata"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/systemstatus"
	"github.com/dmitrijs2005/roadwatch/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Accidents(db dbx.DBTX) accidents.Repository
	SensorData(db dbx.DBTX) sensordata.Repository
	SystemStatus(db dbx.DBTX) systemstatus.Repository
	Alerts(db dbx.DBTX) alerts.Repository
}
