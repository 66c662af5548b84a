package application

import (
	"github.com/fintrackapp/fintrack/internal/finance/domain"
	"github.com/google/uuid"
)

type AccountService struct {
	repo domain.AccountRepository
}

func NewAccountService(repo domain.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// CreateAccount is the only place an account balance is set directly: the
// opening balance becomes the immutable initial_balance, and from then on
// the ledger's atomic increments own the balance column.
func (s *AccountService) CreateAccount(account *domain.Account) error {
	account.ID = uuid.NewString()
	account.Balance = account.Balance.Round(2)
	account.InitialBalance = account.Balance
	account.IsActive = true
	if err := account.Validate(); err != nil {
		return err
	}
	return s.repo.Save(*account)
}

func (s *AccountService) GetAccount(accountID, userID string) (*domain.Account, error) {
	return s.repo.FindByID(accountID, userID)
}

func (s *AccountService) GetUserAccounts(userID string) ([]domain.Account, *domain.AccountSummary, error) {
	accounts, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	summary, err := s.repo.Summary(userID)
	if err != nil {
		return nil, nil, err
	}
	return accounts, summary, nil
}

// UpdateAccount changes name, bank name, type and active flag. Balance
// edits never go through here.
func (s *AccountService) UpdateAccount(account *domain.Account) error {
	existing, err := s.repo.FindByID(account.ID, account.UserID)
	if err != nil {
		return err
	}
	existing.Name = account.Name
	existing.BankName = account.BankName
	existing.AccountType = account.AccountType
	existing.IsActive = account.IsActive
	if err := existing.Validate(); err != nil {
		return err
	}
	*account = *existing
	return s.repo.Update(*existing)
}

func (s *AccountService) DeleteAccount(accountID, userID string) error {
	return s.repo.Delete(accountID, userID)
}
