package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"Hearth/internal/core/groups"
	"Hearth/internal/core/pagination"
)

type postgresGroupRepo struct {
	db *sql.DB
}

// NewGroupRepository creates a new PostgreSQL group repository.
func NewGroupRepository(db *sql.DB) groups.Repository {
	return &postgresGroupRepo{db: db}
}

// memberSortColumns whitelists the sortable columns of the members table.
// createdAt maps to joined_at: a member's creation is their join.
var memberSortColumns = map[pagination.SortField]string{
	pagination.SortByID:        "m.id",
	pagination.SortByCreatedAt: "m.joined_at",
}

// GetByID retrieves a group. Returns (nil, nil) when absent or
// soft-deleted.
func (r *postgresGroupRepo) GetByID(ctx context.Context, id string) (*groups.Group, error) {
	query := `
		SELECT g.id, g.name, g.image_path, g.created_at, g.deleted_at
		FROM groups g
		WHERE g.id = $1 AND ` + notDeleted("g")

	var group groups.Group
	var imagePath sql.NullString
	var deletedAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID, &group.Name, &imagePath, &group.CreatedAt, &deletedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group by id: %w", err)
	}

	group.ImagePath = nullStr(imagePath)
	group.DeletedAt = nullTime(deletedAt)
	return &group, nil
}

// Create inserts a group row.
func (r *postgresGroupRepo) Create(ctx context.Context, group *groups.Group) error {
	query := `
		INSERT INTO groups (id, name, image_path, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		group.ID, group.Name, group.ImagePath, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// CreateMember inserts a membership row.
func (r *postgresGroupRepo) CreateMember(ctx context.Context, member *groups.Member) error {
	query := `
		INSERT INTO group_members (id, group_id, user_id, nickname, joined_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.GroupID, member.UserID, member.Nickname, member.JoinedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return groups.ErrAlreadyMember
		}
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return groups.ErrGroupNotFound
		}
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// FindMemberPage retrieves one page of a group's members through the
// shared cursor engine.
func (r *postgresGroupRepo) FindMemberPage(ctx context.Context, groupID string, page pagination.Request) (pagination.Page[*groups.Member], error) {
	empty := pagination.Empty[*groups.Member]()

	whereConditions := []string{notDeleted("m"), "m.group_id = $1"}
	args := []interface{}{groupID}
	paramIndex := 2

	column, err := sortColumn(memberSortColumns, page.SortField)
	if err != nil {
		return empty, err
	}

	clause, cursorArgs, err := cursorClause(page, column, paramIndex)
	if err != nil {
		return empty, err
	}
	if clause != "" {
		whereConditions = append(whereConditions, clause)
		args = append(args, cursorArgs...)
		paramIndex += len(cursorArgs)
	}

	args = append(args, page.Limit)
	query := fmt.Sprintf(`
		SELECT m.id, m.group_id, m.user_id, m.nickname, m.joined_at, m.deleted_at
		FROM group_members m
		WHERE %s
		%s
		LIMIT $%d`,
		strings.Join(whereConditions, " AND "),
		orderClause(column, page.Direction), paramIndex)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return empty, fmt.Errorf("failed to query member page: %w", err)
	}
	defer closeRows(rows)

	var members []*groups.Member
	for rows.Next() {
		var member groups.Member
		var deletedAt sql.NullTime
		if err := rows.Scan(
			&member.ID, &member.GroupID, &member.UserID,
			&member.Nickname, &member.JoinedAt, &deletedAt,
		); err != nil {
			return empty, fmt.Errorf("failed to scan member row: %w", err)
		}
		member.DeletedAt = nullTime(deletedAt)
		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return empty, fmt.Errorf("error iterating member rows: %w", err)
	}

	if len(members) == 0 {
		return empty, nil
	}

	last := members[len(members)-1]
	return pagination.Page[*groups.Member]{
		Items:      members,
		NextCursor: nextCursor(page.SortField, last.ID, last.JoinedAt),
	}, nil
}
