package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// ExpenseService exposes expense tracker operations.
type ExpenseService interface {
	List(ctx context.Context) ([]model.Expense, error)
	Create(ctx context.Context, amount decimal.Decimal, category string) (*model.Expense, error)
}

type expenseService struct {
	expenses repository.ExpenseRepository
}

// NewExpenseService builds an ExpenseService.
func NewExpenseService(expenses repository.ExpenseRepository) ExpenseService {
	return &expenseService{expenses: expenses}
}

func (s *expenseService) List(ctx context.Context) ([]model.Expense, error) {
	return s.expenses.List(ctx)
}

func (s *expenseService) Create(ctx context.Context, amount decimal.Decimal, category string) (*model.Expense, error) {
	expense := &model.Expense{
		Amount:   amount,
		Category: category,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}
