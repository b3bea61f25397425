package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/refinly/loan-referral/internal/entity"
	"github.com/refinly/loan-referral/internal/infra/metrics"
	"go.uber.org/zap"
)

const MsgLeadSubmitted = "Lead submitted successfully."

type SubmitLeadUseCase struct {
	UserRepo    entity.UserRepositoryInterface
	LeadRepo    entity.LeadRepositoryInterface
	PackageRepo entity.BankPackageRepositoryInterface
	Notifier    AdminNotifier
	DefaultRate float64
	Logger      *zap.Logger
}

func NewSubmitLeadUseCase(
	userRepo entity.UserRepositoryInterface,
	leadRepo entity.LeadRepositoryInterface,
	packageRepo entity.BankPackageRepositoryInterface,
	notifier AdminNotifier,
	defaultRate float64,
	logger *zap.Logger,
) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{
		UserRepo:    userRepo,
		LeadRepo:    leadRepo,
		PackageRepo: packageRepo,
		Notifier:    notifier,
		DefaultRate: defaultRate,
		Logger:      logger,
	}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, referrerID int64, input SubmitLeadInput) (*SubmitLeadOutput, error) {
	if fields := ValidateSubmitLeadInput(input); len(fields) > 0 {
		return nil, &ValidationErrors{Message: LeadValidationMessage(fields), Fields: fields}
	}

	name := strings.TrimSpace(*input.Name)
	amount := *input.LoanAmount
	tenure := *input.LoanTenure

	packages, err := uc.PackageRepo.FindAll(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to list bank packages", Err: err}
	}

	suitable := make([]SuitablePackage, 0, len(packages))
	for _, p := range packages {
		if !p.Covers(amount) {
			continue
		}
		estimate, err := entity.CalculateRepayment(amount, tenure, p.InterestRate)
		if err != nil {
			return nil, fmt.Errorf("estimate for package %d: %w", p.ID, err)
		}
		suitable = append(suitable, SuitablePackage{
			ID:                 p.ID,
			Name:               p.Name,
			InterestRate:       p.InterestRate,
			TenureOptions:      p.TenureOptions,
			EstimatedRepayment: estimate,
		})
	}

	referrer, err := uc.UserRepo.FindByID(ctx, referrerID)
	if errors.Is(err, entity.ErrUserNotFound) {
		return nil, &DomainError{Code: CodeReferrerNotFound, Message: "Referrer not found."}
	}
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to load referrer", Err: err}
	}

	lead := entity.NewLead(referrer.ID, name, *input.Age, amount, tenure, *input.CurrentRepayment)
	if err := uc.LeadRepo.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrReferrerNotFound) {
			return nil, &DomainError{Code: CodeReferrerNotFound, Message: "Referrer not found."}
		}
		return nil, &TechnicalError{Code: CodeDatabase, Message: "failed to persist lead", Err: err}
	}
	metrics.RecordLeadSubmitted()

	repayment, err := entity.CalculateRepayment(amount, tenure, uc.DefaultRate)
	if err != nil {
		return nil, fmt.Errorf("calculate repayment: %w", err)
	}

	if uc.Notifier != nil {
		if err := uc.Notifier.NotifyNewLead(ctx, NewLeadNotification(lead, referrer)); err != nil {
			uc.Logger.Error("admin notification failed", zap.Int64("lead_id", lead.ID), zap.Error(err))
		}
	}

	uc.Logger.Info("lead submitted",
		zap.Int64("lead_id", lead.ID),
		zap.Int64("referrer_id", referrer.ID),
		zap.Int("suitable_packages", len(suitable)),
	)

	return &SubmitLeadOutput{
		Message:             MsgLeadSubmitted,
		LeadID:              lead.ID,
		SuitablePackages:    suitable,
		CalculatedRepayment: repayment,
	}, nil
}
