package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusone-dev/digital-campus/backend/internal/domain"
)

func TestGeneratePaymentCode(t *testing.T) {
	pattern := regexp.MustCompile(`^PAY-[A-HJ-NP-Z]{4}-\d{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GeneratePaymentCode()
		require.Regexp(t, pattern, code)
		seen[code] = true
	}

	// 支付码的全局唯一性由数据库约束保证，这里只确认生成器不会退化成常量
	assert.Greater(t, len(seen), 1)
}

func TestGenerateStudentNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^20\d{2}\d{6}$`)

	for i := 0; i < 20; i++ {
		require.Regexp(t, pattern, GenerateStudentNumber())
	}
}

func TestGenerateUsernameFromChineseName(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+\d{1,3}$`)

	for i := 0; i < 20; i++ {
		username := GenerateUsernameFromChineseName("王伟")
		require.Regexp(t, pattern, username)
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword(12)
	assert.Len(t, password, 12)
}

func TestGenerateRandomUser(t *testing.T) {
	user, err := GenerateRandomUser("password123", "campus.example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, user.Username)
	assert.NotEmpty(t, user.FullName)
	assert.Contains(t, user.Email, "@campus.example.com")
	assert.True(t, user.Role.IsValid())
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestGenerateRandomApplication(t *testing.T) {
	application := GenerateRandomApplication(3)

	assert.Equal(t, int64(3), application.CourseID)
	assert.Equal(t, domain.ApplicationStatusSubmitted, application.Status)
	assert.Equal(t, domain.PaymentStatusPending, application.PaymentStatus)
	assert.NotEmpty(t, application.Reference)
	assert.NotEmpty(t, application.Phone)
}
