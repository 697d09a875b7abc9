package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inventario/internal/common"
	"inventario/internal/domain/model"
)

type RecordRepository interface {
	Create(ctx context.Context, record *model.Record) error
	Update(ctx context.Context, record *model.Record) error
	FindByID(ctx context.Context, id string) (*model.Record, error)
	List(ctx context.Context) ([]model.Record, error)
	Delete(ctx context.Context, id string) error
}

type pgRecordRepository struct {
	db *sql.DB
}

func NewPgRecordRepository(db *sql.DB) RecordRepository {
	return &pgRecordRepository{db: db}
}

func (r *pgRecordRepository) Create(ctx context.Context, rec *model.Record) error {
	query := `INSERT INTO records (id, nombre, imagen, cantidad, ubicacion, tipo, observaciones, serial, estado, usuario, fecha)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Nombre, rec.Imagen, rec.Cantidad, rec.Ubicacion, rec.Tipo,
		rec.Observaciones, rec.Serial, rec.Estado, rec.Usuario, rec.Fecha,
	)
	if err != nil {
		return fmt.Errorf("pgRecordRepository.Create: %w", err)
	}
	return nil
}

func (r *pgRecordRepository) Update(ctx context.Context, rec *model.Record) error {
	query := `UPDATE records SET
	            nombre = $1, imagen = $2, cantidad = $3, ubicacion = $4, tipo = $5,
	            observaciones = $6, serial = $7, estado = $8, usuario = $9, fecha = $10
	          WHERE id = $11`
	result, err := r.db.ExecContext(ctx, query,
		rec.Nombre, rec.Imagen, rec.Cantidad, rec.Ubicacion, rec.Tipo,
		rec.Observaciones, rec.Serial, rec.Estado, rec.Usuario, rec.Fecha, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("pgRecordRepository.Update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgRecordRepository.Update: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgRecordRepository) FindByID(ctx context.Context, id string) (*model.Record, error) {
	query := `SELECT id, nombre, imagen, cantidad, ubicacion, tipo, observaciones, serial, estado, usuario, fecha
	          FROM records WHERE id = $1`
	rec := &model.Record{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.Nombre, &rec.Imagen, &rec.Cantidad, &rec.Ubicacion, &rec.Tipo,
		&rec.Observaciones, &rec.Serial, &rec.Estado, &rec.Usuario, &rec.Fecha,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgRecordRepository.FindByID: %w", err)
	}
	return rec, nil
}

func (r *pgRecordRepository) List(ctx context.Context) ([]model.Record, error) {
	query := `SELECT id, nombre, imagen, cantidad, ubicacion, tipo, observaciones, serial, estado, usuario, fecha
	          FROM records ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgRecordRepository.List: %w", err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		var rec model.Record
		if err := rows.Scan(
			&rec.ID, &rec.Nombre, &rec.Imagen, &rec.Cantidad, &rec.Ubicacion, &rec.Tipo,
			&rec.Observaciones, &rec.Serial, &rec.Estado, &rec.Usuario, &rec.Fecha,
		); err != nil {
			return nil, fmt.Errorf("pgRecordRepository.List: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgRecordRepository.List: %w", err)
	}
	return records, nil
}

func (r *pgRecordRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgRecordRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgRecordRepository.Delete: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
