package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selin/coursehub/internal/app/models"
	"github.com/selin/coursehub/internal/db"
	"github.com/selin/coursehub/internal/pkg/helpers"
	"github.com/selin/coursehub/internal/pkg/logger"
)

// MaterialFilter carries the optional list filters and pagination parameters.
type MaterialFilter struct {
	Category *models.MaterialCategory
	Week     *int
	Topic    string
	Search   string
	Page     int
	PageSize int
}

// MaterialRepository handles material database operations
type MaterialRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const materialColumns = "id, title, description, file_path, file_type, category, week, topic, tags, uploaded_by, created_at, updated_at"

// scanMaterial scans one row of materialColumns into a Material, decoding the
// category through its closed variant type.
func scanMaterial(row pgx.Row) (*models.Material, error) {
	var m models.Material
	var category string

	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.FilePath, &m.FileType, &category,
		&m.Week, &m.Topic, &m.Tags, &m.UploadedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Category, err = models.ParseMaterialCategory(category)
	if err != nil {
		return nil, fmt.Errorf("stored material %d has invalid category %q: %w", m.ID, category, err)
	}

	return &m, nil
}

// Create inserts a new material record and returns it with the assigned id
// and timestamps.
func (r *MaterialRepository) Create(ctx context.Context, m *models.Material) (*models.Material, error) {
	query, args, err := r.sb.Insert("materials").
		Columns("title", "description", "file_path", "file_type", "category", "week", "topic", "tags", "uploaded_by").
		Values(m.Title, m.Description, m.FilePath, m.FileType, string(m.Category), m.Week, m.Topic, m.Tags, m.UploadedBy).
		Suffix("RETURNING " + materialColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert material query: %w", err)
	}

	created, err := scanMaterial(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		logger.Error().Err(err).Str("title", m.Title).Msg("Error inserting material")
		return nil, fmt.Errorf("failed to insert material: %w", err)
	}

	return created, nil
}

// GetByID retrieves a material by id. Returns (nil, nil) when no row matches.
func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*models.Material, error) {
	query, args, err := r.sb.Select(materialColumns).
		From("materials").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get material query: %w", err)
	}

	m, err := scanMaterial(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error querying material")
		return nil, fmt.Errorf("failed to query material: %w", err)
	}

	return m, nil
}

// List returns the page of materials matching the filter plus the total count
// ignoring pagination. Ordering is newest-first with the row id breaking
// creation-time ties so a single query execution is deterministic. The count
// and page queries run inside one transaction so the total always describes
// the same snapshot the page was read from.
func (r *MaterialRepository) List(ctx context.Context, filter MaterialFilter) ([]models.Material, int64, error) {
	where := squirrel.And{}
	if filter.Category != nil {
		where = append(where, squirrel.Eq{"category": string(*filter.Category)})
	}
	if filter.Week != nil {
		where = append(where, squirrel.Eq{"week": *filter.Week})
	}
	if topic := strings.TrimSpace(filter.Topic); topic != "" {
		where = append(where, squirrel.ILike{"topic": "%" + topic + "%"})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From("materials").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count materials query: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)

	query, args, err := r.sb.Select(materialColumns).
		From("materials").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list materials query: %w", err)
	}

	var total int64
	materials := []models.Material{}
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return fmt.Errorf("failed to count materials: %w", err)
		}
		if total == 0 {
			return nil
		}

		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list materials: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			m, err := scanMaterial(rows)
			if err != nil {
				return fmt.Errorf("failed to scan material row: %w", err)
			}
			materials = append(materials, *m)
		}
		return rows.Err()
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error listing materials")
		return nil, 0, err
	}

	return materials, total, nil
}

// Update writes the material's mutable columns and refreshes updated_at. The
// caller supplies the fully merged record, so untouched fields keep their
// loaded values (last-commit-wins on overlapping writes).
func (r *MaterialRepository) Update(ctx context.Context, m *models.Material) (*models.Material, error) {
	query, args, err := r.sb.Update("materials").
		Set("title", m.Title).
		Set("description", m.Description).
		Set("category", string(m.Category)).
		Set("week", m.Week).
		Set("topic", m.Topic).
		Set("tags", m.Tags).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": m.ID}).
		Suffix("RETURNING " + materialColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update material query: %w", err)
	}

	updated, err := scanMaterial(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Int64("id", m.ID).Msg("Error updating material")
		return nil, fmt.Errorf("failed to update material: %w", err)
	}

	return updated, nil
}

// Delete removes a material row. Returns sql.ErrNoRows when nothing matched.
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("materials").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete material query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error deleting material")
		return fmt.Errorf("failed to delete material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sql.ErrNoRows
	}

	return nil
}
