package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uncle-tee/socialite.io/app/apperrors"
	"github.com/uncle-tee/socialite.io/app/config"
	"github.com/uncle-tee/socialite.io/app/models"
)

var roleColumns = []string{
	"id", "code", "name", "association_id", "status", "created_at", "updated_at",
}

func TestEnrollMemberCreatesUserMembershipAndRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM roles").
		WillReturnRows(sqlmock.NewRows(roleColumns).
			AddRow("role-1", "ROL-1", "Treasurer", "assoc-1", "ACTIVE", now, now))
	mock.ExpectBegin()
	mock.ExpectQuery("FROM portal_users").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO portal_users").
		WillReturnRows(insertReturningRows("user-2"))
	mock.ExpectQuery("INSERT INTO memberships").
		WillReturnRows(insertReturningRows("member-2"))
	mock.ExpectExec("INSERT INTO membership_roles").
		WithArgs("member-2", "role-1", "ACTIVE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	association := &models.Association{ID: "assoc-1", Code: "ASC-1", Name: "Umoja Club"}
	membership, err := EnrollMember(db, config.SMTPConfig{}, association, EnrollMemberRequest{
		FirstName: "Bayo",
		LastName:  "Adeyemi",
		Email:     "Bayo@Example.com",
		Roles:     []string{"ROL-1"},
	})
	require.NoError(t, err)

	assert.Regexp(t, "^MBR-", membership.Reference)
	assert.Equal(t, models.MemberAccount, membership.AccountType)
	// emails normalize to lower case
	assert.Equal(t, "bayo@example.com", membership.PortalUser.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollMemberReusesExistingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("FROM portal_users").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "email", "password", "first_name", "last_name", "phone_number", "status",
			"created_at", "updated_at",
		}).AddRow("user-2", "bayo@example.com", "hash", "Bayo", "Adeyemi", "", "ACTIVE", now, now))
	mock.ExpectQuery("INSERT INTO memberships").
		WillReturnRows(insertReturningRows("member-2"))
	mock.ExpectCommit()

	association := &models.Association{ID: "assoc-1", Name: "Umoja Club"}
	membership, err := EnrollMember(db, config.SMTPConfig{}, association, EnrollMemberRequest{
		FirstName: "Bayo",
		LastName:  "Adeyemi",
		Email:     "bayo@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "user-2", membership.PortalUserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollMemberRejectsUnknownRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM roles").WillReturnError(sql.ErrNoRows)

	association := &models.Association{ID: "assoc-1"}
	_, err = EnrollMember(db, config.SMTPConfig{}, association, EnrollMemberRequest{
		FirstName: "Bayo",
		LastName:  "Adeyemi",
		Email:     "bayo@example.com",
		Roles:     []string{"ROL-GHOST"},
	})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.KindIllegalArgument, appErr.Kind)
}

func TestEnrollMemberRequiresNames(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	association := &models.Association{ID: "assoc-1"}
	_, err = EnrollMember(db, config.SMTPConfig{}, association, EnrollMemberRequest{
		Email: "bayo@example.com",
	})
	require.Error(t, err)
}
