package oracle

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/entity"
	"github.com/Umanova-doo/maptool-adamo-middleware-api/internal/domain/valueobject"
)

const characterizationColumns = `ODOR_CHARACTERIZATION_ID, GR_NUMBER, ODOR_SUMMARY,
	REG_NUMBER, BATCH, INTENSITY, TENACITY, OVERALL_LIKING, FAMILY_PROFILE, ODOR_PROFILE,
	AMBERGRIS_FAMILY, AROMATIC_HERBAL_FAMILY, CITRUS_FAMILY, FLORAL_FAMILY, FRUITY_FAMILY,
	GREEN_FAMILY, MARINE_FAMILY, MUSKY_ANIMALIC_FAMILY, OFF_ODORS_FAMILY, SPICY_FAMILY,
	SWEET_GOURMAND_FAMILY, WOODY_FAMILY,
	APPLE, ROSE, CEDARWOOD, VANILLA, LEMON,
	CREATED_BY, CREATION_DATE, LAST_MODIFIED_BY, LAST_MODIFIED_DATE`

// descriptorColumnCodes lists the per-descriptor score columns carried
// into the Descriptors map, in select order.
var descriptorColumnCodes = []string{"APPLE", "ROSE", "CEDARWOOD", "VANILLA", "LEMON"}

// CharacterizationRepository implements
// outbound.OdorCharacterizationRepository on GIV_MAP.ODOR_CHARACTERIZATION.
type CharacterizationRepository struct {
	db *sql.DB
}

// NewCharacterizationRepository creates a CharacterizationRepository.
func NewCharacterizationRepository(db *sql.DB) *CharacterizationRepository {
	return &CharacterizationRepository{db: db}
}

func (r *CharacterizationRepository) FindByGRNumber(ctx context.Context, grNumber valueobject.GRNumber) (*entity.OdorCharacterization, error) {
	query := fmt.Sprintf(`SELECT %s FROM GIV_MAP.ODOR_CHARACTERIZATION WHERE GR_NUMBER = :1`,
		characterizationColumns)

	odorChar, err := scanCharacterization(r.db.QueryRowContext(ctx, query, grNumber.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find odor characterization failed: %w", err)
	}
	return odorChar, nil
}

func (r *CharacterizationRepository) FindAll(ctx context.Context, limit int) ([]entity.OdorCharacterization, error) {
	query := fmt.Sprintf(`SELECT %s FROM GIV_MAP.ODOR_CHARACTERIZATION ORDER BY ODOR_CHARACTERIZATION_ID`,
		characterizationColumns)
	var args []any
	if limit > 0 {
		args = append(args, limit)
		query += " FETCH FIRST :1 ROWS ONLY"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query odor characterizations failed: %w", err)
	}
	defer rows.Close()

	var odorChars []entity.OdorCharacterization
	for rows.Next() {
		odorChar, err := scanCharacterization(rows)
		if err != nil {
			return nil, fmt.Errorf("scan odor characterization failed: %w", err)
		}
		odorChars = append(odorChars, *odorChar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate odor characterizations failed: %w", err)
	}

	return odorChars, nil
}

func scanCharacterization(row rowScanner) (*entity.OdorCharacterization, error) {
	var c entity.OdorCharacterization
	var grNumber string
	descriptorScores := make([]*int, len(descriptorColumnCodes))

	dests := []any{
		&c.OdorCharacterizationID, &grNumber, &c.OdorSummary,
		&c.RegNumber, &c.Batch, &c.Intensity, &c.Tenacity, &c.OverallLiking,
		&c.FamilyProfile, &c.OdorProfile,
		&c.AmbergrisFamily, &c.AromaticHerbalFamily, &c.CitrusFamily, &c.FloralFamily,
		&c.FruityFamily, &c.GreenFamily, &c.MarineFamily, &c.MuskyAnimalicFamily,
		&c.OffOdorsFamily, &c.SpicyFamily, &c.SweetGourmandFamily, &c.WoodyFamily,
	}
	for i := range descriptorScores {
		dests = append(dests, &descriptorScores[i])
	}
	dests = append(dests, &c.CreatedBy, &c.CreationDate, &c.LastModifiedBy, &c.LastModifiedDate)

	if err := row.Scan(dests...); err != nil {
		return nil, err
	}

	c.GrNumber = valueobject.GRNumber(grNumber)
	c.Descriptors = make(map[string]int)
	for i, code := range descriptorColumnCodes {
		if descriptorScores[i] != nil {
			c.Descriptors[code] = *descriptorScores[i]
		}
	}

	return &c, nil
}
