package store

import (
	"database/sql"
	"time"

	"github.com/MKhiriev/go-crm-auth/models"
)

// userRow is the storage form of models.User. Timestamps are kept in UTC.
type userRow struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	IsActive     bool
	Email        sql.NullString
	Name         sql.NullString
	LastLogin    sql.NullTime
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func newUserRow(u models.User) userRow {
	row := userRow{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
	if u.Email != nil {
		row.Email = sql.NullString{String: *u.Email, Valid: true}
	}
	if u.Name != nil {
		row.Name = sql.NullString{String: *u.Name, Valid: true}
	}
	if u.LastLogin != nil {
		row.LastLogin = sql.NullTime{Time: u.LastLogin.UTC(), Valid: true}
	}
	return row
}

// dest returns scan targets in userColumns order.
func (r *userRow) dest() []any {
	return []any{
		&r.ID, &r.Username, &r.PasswordHash, &r.Role, &r.IsActive,
		&r.Email, &r.Name, &r.LastLogin, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r userRow) model() models.User {
	u := models.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         models.Role(r.Role),
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if r.Email.Valid {
		u.Email = &r.Email.String
	}
	if r.Name.Valid {
		u.Name = &r.Name.String
	}
	if r.LastLogin.Valid {
		t := r.LastLogin.Time.UTC()
		u.LastLogin = &t
	}
	return u
}
