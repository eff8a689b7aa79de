package auth_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/workforce-management/internal/auth"
	"github.com/frahmantamala/workforce-management/internal/role"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

type mockAuthRepository struct {
	passwordHash string
	userID       string
	user         *auth.User
	lookupError  error
}

func (m *mockAuthRepository) GetPasswordForEmail(email string) (string, string, error) {
	if m.lookupError != nil {
		return "", "", m.lookupError
	}
	return m.passwordHash, m.userID, nil
}

func (m *mockAuthRepository) GetUserWithRole(userID int64) (*auth.User, error) {
	if m.user == nil {
		return nil, auth.ErrInvalidCredentials
	}
	return m.user, nil
}

var _ = Describe("AuthService", func() {
	var (
		repo *mockAuthRepository
		svc  *auth.Service
	)

	BeforeEach(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())

		repo = &mockAuthRepository{
			passwordHash: string(hash),
			userID:       "42",
			user: &auth.User{
				ID:         42,
				Email:      "lead@corp.test",
				Role:       role.TeamLead,
				Department: "Engineering",
			},
		}

		tokenGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
		svc = auth.NewService(repo, tokenGen)
	})

	Describe("Authenticate", func() {
		It("returns a token pair for valid credentials", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "lead@corp.test", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects a wrong password", func() {
			_, err := svc.Authenticate(auth.LoginDTO{Email: "lead@corp.test", Password: "wrong"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown email without leaking details", func() {
			repo.lookupError = auth.ErrInvalidCredentials

			_, err := svc.Authenticate(auth.LoginDTO{Email: "nobody@corp.test", Password: "correct-horse"})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})
	})

	Describe("tokens", func() {
		It("validates an issued access token", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "lead@corp.test", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())

			claims, err := svc.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal("42"))
			Expect(claims.Email).To(Equal("lead@corp.test"))
		})

		It("rejects garbage tokens", func() {
			_, err := svc.ValidateAccessToken("not.a.token")
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})

		It("rejects expired tokens", func() {
			shortGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", time.Nanosecond, 24*time.Hour)
			token, err := shortGen.GenerateAccessToken("42", "lead@corp.test")
			Expect(err).NotTo(HaveOccurred())

			time.Sleep(10 * time.Millisecond)

			_, err = svc.ValidateAccessToken(token)
			Expect(err).To(Equal(auth.ErrTokenExpired))
		})

		It("rotates the pair on refresh", func() {
			tokens, err := svc.Authenticate(auth.LoginDTO{Email: "lead@corp.test", Password: "correct-horse"})
			Expect(err).NotTo(HaveOccurred())

			refreshed, err := svc.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(refreshed.AccessToken).NotTo(BeEmpty())
			Expect(refreshed.RefreshToken).NotTo(BeEmpty())
		})
	})

	Describe("GetUserWithRole", func() {
		It("loads the principal with its parsed role", func() {
			u, err := svc.GetUserWithRole(42)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Role).To(Equal(role.TeamLead))
			Expect(u.IsManagerOrAbove()).To(BeFalse())
			Expect(u.IsDepartmentHead()).To(BeFalse())
			Expect(u.CanManage(role.Employee)).To(BeTrue())
		})
	})
})
