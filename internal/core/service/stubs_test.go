package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sizafi/marketplace-api/internal/core/domain"
	"github.com/sizafi/marketplace-api/internal/core/ports"
)

type stubUserRepo struct {
	users         map[string]*domain.User
	seq           int
	updateRoleErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListByRoles(_ context.Context, roles []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		for _, role := range roles {
			if u.Role == role {
				out = append(out, cloneUser(u))
				break
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role string) error {
	if r.updateRoleErr != nil {
		return r.updateRoleErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.seq++
	copy := cloneUser(u)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[copy.ID] = copy
	return cloneUser(copy)
}

func (r *stubUserRepo) remove(id string) {
	delete(r.users, id)
}

type stubAppRepo struct {
	apps map[string]*domain.Application
	seq  int
}

func newStubAppRepo() *stubAppRepo {
	return &stubAppRepo{apps: make(map[string]*domain.Application)}
}

func cloneApp(a *domain.Application) *domain.Application {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAppRepo) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	r.seq++
	copy := cloneApp(app)
	copy.ID = fmt.Sprintf("app-%d", r.seq)
	r.apps[copy.ID] = cloneApp(copy)
	return cloneApp(copy), nil
}

func (r *stubAppRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return cloneApp(a), nil
}

func (r *stubAppRepo) FindPendingByApplicant(_ context.Context, applicantID string) (*domain.Application, error) {
	for _, a := range r.apps {
		if a.ApplicantID == applicantID && a.Status == domain.ApplicationPending {
			return cloneApp(a), nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubAppRepo) ListByApplicant(_ context.Context, applicantID string) ([]*domain.Application, error) {
	var out []*domain.Application
	for _, a := range r.apps {
		if a.ApplicantID == applicantID {
			out = append(out, cloneApp(a))
		}
	}
	return out, nil
}

func (r *stubAppRepo) List(_ context.Context, status domain.ApplicationStatus) ([]*domain.Application, error) {
	var out []*domain.Application
	for _, a := range r.apps {
		if status == "" || a.Status == status {
			out = append(out, cloneApp(a))
		}
	}
	return out, nil
}

func (r *stubAppRepo) Resolve(_ context.Context, id string, status domain.ApplicationStatus, feedback, reviewerID string) (*domain.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	if a.Status != domain.ApplicationPending {
		return nil, domain.ErrApplicationResolved
	}
	a.Status = status
	a.Feedback = feedback
	a.ReviewedBy = reviewerID
	a.UpdatedAt = time.Now().UTC()
	return cloneApp(a), nil
}

type stubPaymentRepo struct {
	payments map[string]*domain.Payment
	seq      int
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{payments: make(map[string]*domain.Payment)}
}

func clonePayment(p *domain.Payment) *domain.Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	if _, exists := r.payments[p.Reference]; exists {
		return nil, fmt.Errorf("duplicate reference %s", p.Reference)
	}
	r.seq++
	copy := clonePayment(p)
	copy.ID = fmt.Sprintf("payment-%d", r.seq)
	r.payments[copy.Reference] = clonePayment(copy)
	return clonePayment(copy), nil
}

func (r *stubPaymentRepo) FindByReference(_ context.Context, reference string) (*domain.Payment, error) {
	p, ok := r.payments[reference]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return clonePayment(p), nil
}

func (r *stubPaymentRepo) Resolve(_ context.Context, reference string, status domain.PaymentStatus, gatewayData map[string]any) (*domain.Payment, bool, error) {
	p, ok := r.payments[reference]
	if !ok {
		return nil, false, domain.ErrPaymentNotFound
	}
	if p.Status != domain.PaymentPending {
		return clonePayment(p), false, nil
	}
	p.Status = status
	if gatewayData != nil {
		p.GatewayData = gatewayData
	}
	p.UpdatedAt = time.Now().UTC()
	return clonePayment(p), true, nil
}

func (r *stubPaymentRepo) ListByPayer(_ context.Context, payerID string) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.PayerID == payerID {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) ListSuccessByWorker(_ context.Context, workerID string) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.WorkerID == workerID && p.Status == domain.PaymentSuccess {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

type stubDocumentStore struct {
	stored     []string
	storeErr   error
	presignErr error
}

func (s *stubDocumentStore) Store(_ context.Context, key, fileName, _ string, size int64, body io.Reader) (*ports.StoredDocument, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	_, _ = io.Copy(io.Discard, body)
	s.stored = append(s.stored, key)
	return &ports.StoredDocument{
		URL:      "https://files.test/" + key,
		Key:      key,
		FileName: fileName,
		Size:     size,
	}, nil
}

func (s *stubDocumentStore) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	if s.presignErr != nil {
		return "", s.presignErr
	}
	return "https://files.test/" + key + "?signed=1", nil
}

type stubGateway struct {
	initErr    error
	initInputs []ports.InitializeTransactionInput
	verifyErr  error
	status     string
	data       map[string]any
}

func (g *stubGateway) InitializeTransaction(_ context.Context, input ports.InitializeTransactionInput) (*ports.InitializeTransactionResult, error) {
	g.initInputs = append(g.initInputs, input)
	if g.initErr != nil {
		return nil, g.initErr
	}
	return &ports.InitializeTransactionResult{
		AuthorizationURL: "https://checkout.test/" + input.Reference,
		AccessCode:       "access_" + input.Reference,
		Reference:        input.Reference,
	}, nil
}

func (g *stubGateway) VerifyTransaction(_ context.Context, reference string) (*ports.TransactionStatus, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return &ports.TransactionStatus{Status: g.status, Data: g.data}, nil
}

type stubDedup struct {
	seen     map[string]bool
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, reference, event string) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[reference+":"+event], nil
}

func (d *stubDedup) Mark(_ context.Context, reference, event string) error {
	d.seen[reference+":"+event] = true
	return nil
}
