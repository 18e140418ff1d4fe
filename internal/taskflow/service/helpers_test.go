package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/domain"
	"github.com/Jaymin-PCA240/Task-Management-BE/internal/taskflow/store/drivers/sqlite"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/jwtx"
	"github.com/Jaymin-PCA240/Task-Management-BE/pkg/mailer"
	"github.com/stretchr/testify/require"
)

const testIssuer = "taskflow-test"

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.TaskEvent
}

func (p *recordingPublisher) Publish(ev domain.TaskEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) kinds() []domain.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventKind, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Kind)
	}
	return out
}

func (p *recordingPublisher) last() domain.TaskEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type testEnv struct {
	store       *sqlite.Store
	mail        *mailer.Recorder
	events      *recordingPublisher
	auth        *AuthService
	resets      *PasswordResetService
	projects    *ProjectService
	invitations *InvitationService
	tasks       *TaskService
	activity    *ActivityService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmEdDSA,
		Issuer:    testIssuer,
	})
	require.NoError(t, err)

	resetTokens, err := jwtx.NewPurposeSigner([]byte("0123456789abcdef0123456789abcdef"), testIssuer)
	require.NoError(t, err)

	rec := &mailer.Recorder{}
	events := &recordingPublisher{}

	return &testEnv{
		store:  st,
		mail:   rec,
		events: events,
		auth: &AuthService{
			KeyManager: km,
			Store:      st,
			Issuer:     testIssuer,
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
		},
		resets: &PasswordResetService{
			Store:    st,
			Mailer:   rec,
			Tokens:   resetTokens,
			OTPKey:   []byte("otp-test-key"),
			OTPTTL:   DefaultOTPTTL,
			ResetTTL: DefaultResetTokenTTL,
		},
		projects:    &ProjectService{Store: st, Mailer: rec},
		invitations: &InvitationService{Store: st, Mailer: rec},
		tasks:       &TaskService{Store: st, Events: events},
		activity:    &ActivityService{Store: st},
	}
}

func (e *testEnv) register(t *testing.T, name, email string) domain.User {
	t.Helper()
	res, err := e.auth.Register(context.Background(), name, email, "secret1")
	require.NoError(t, err)
	return res.User
}

// join puts user into the project through an approved invitation.
func (e *testEnv) join(t *testing.T, projectID, inviterID, userID string) {
	t.Helper()
	ctx := context.Background()
	inv, err := e.invitations.Send(ctx, projectID, userID, inviterID)
	require.NoError(t, err)
	_, err = e.invitations.Approve(ctx, inv.ID, userID)
	require.NoError(t, err)
}

var codePattern = regexp.MustCompile(`<strong>(\d{6})</strong>`)

func (e *testEnv) lastOTP(t *testing.T) string {
	t.Helper()
	msg, ok := e.mail.Last()
	require.True(t, ok, "no mail sent")
	m := codePattern.FindStringSubmatch(msg.HTML)
	require.Len(t, m, 2, "no code in %q", msg.HTML)
	return m[1]
}

func actions(entries []domain.ActivityDetails) []domain.ActivityAction {
	out := make([]domain.ActivityAction, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Action)
	}
	return out
}
