package sqlite

import (
	"context"
	"database/sql"
	"errors"

	dommember "example.com/ecomshop/app/internal/domain/member"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, m *dommember.Member) (*dommember.Member, error) {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO members (user_id, display_name, description, city, country)
        VALUES (?, ?, ?, ?, ?)
    `, m.UserID, m.DisplayName, m.Description, m.City, m.Country)
	if err != nil {
		return nil, err
	}
	m.ID, _ = res.LastInsertId()
	return m, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*dommember.Member, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

func (r *MemberRepository) GetByUserID(ctx context.Context, userID int64) (*dommember.Member, error) {
	return r.get(ctx, `WHERE user_id = ?`, userID)
}

func (r *MemberRepository) get(ctx context.Context, where string, arg any) (*dommember.Member, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, user_id, display_name, description, city, country
        FROM members `+where, arg)

	var m dommember.Member
	var description, city, country sql.NullString
	if err := row.Scan(&m.ID, &m.UserID, &m.DisplayName, &description, &city, &country); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, dommember.ErrMemberNotFound
		}
		return nil, err
	}
	m.Description = strPtr(description)
	m.City = strPtr(city)
	m.Country = strPtr(country)
	return &m, nil
}

func (r *MemberRepository) List(ctx context.Context) ([]*dommember.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, user_id, display_name, description, city, country
        FROM members ORDER BY id ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []*dommember.Member{}
	for rows.Next() {
		var m dommember.Member
		var description, city, country sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &m.DisplayName, &description, &city, &country); err != nil {
			return nil, err
		}
		m.Description = strPtr(description)
		m.City = strPtr(city)
		m.Country = strPtr(country)
		members = append(members, &m)
	}
	return members, rows.Err()
}

func (r *MemberRepository) Update(ctx context.Context, m *dommember.Member) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE members SET display_name = ?, description = ?, city = ?, country = ?
        WHERE id = ?
    `, m.DisplayName, m.Description, m.City, m.Country, m.ID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return dommember.ErrUpdateFailed
	}
	return nil
}
