package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dhyanpatel/TourneyFlights/internal/domain"
	"github.com/dhyanpatel/TourneyFlights/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Compile-time check to ensure TournamentRepository implements the port
var _ output.TournamentSource = (*TournamentRepository)(nil)

// tournamentRow is the persistence model for the scraped tournament
// calendar. An external loader writes these rows; the core only reads them.
type tournamentRow struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	City      string `gorm:"not null;index"`
	Region    string
	StartDate time.Time `gorm:"not null;index"`
	EndDate   time.Time
}

func (tournamentRow) TableName() string {
	return "tournaments"
}

// TournamentRepository struct - Secondary/Driven adapter for PostgreSQL
type TournamentRepository struct {
	dbGorm *gorm.DB
}

// NewTournamentRepository func - Creates new PostgreSQL tournament repository
func NewTournamentRepository(dbGorm *gorm.DB) *TournamentRepository {
	logrus.Info("Migrate tournaments table ...")
	if err := dbGorm.AutoMigrate(&tournamentRow{}); err != nil {
		logrus.Errorln(err)
	}
	return &TournamentRepository{
		dbGorm: dbGorm,
	}
}

// ListUpcoming returns tournaments starting within [from, to], ordered by
// start date. A database failure is wrapped as source-unavailable, which is
// fatal for session creation.
func (p *TournamentRepository) ListUpcoming(ctx context.Context, from, to time.Time) ([]domain.Tournament, error) {
	var rows []tournamentRow
	err := p.dbGorm.WithContext(ctx).
		Where("start_date >= ? AND start_date <= ?", from, to).
		Order("start_date asc").
		Find(&rows).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, fmt.Errorf("%w: %v", domain.ErrTournamentSourceUnavailable, err)
	}

	tournaments := make([]domain.Tournament, 0, len(rows))
	for _, row := range rows {
		tournaments = append(tournaments, domain.Tournament{
			Name:      row.Name,
			City:      row.City,
			Region:    row.Region,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
		})
	}
	return tournaments, nil
}
