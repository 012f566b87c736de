package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/miguelitowashere/Proyecto-Final-Software/internal/application/dto"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/entity"
	"github.com/miguelitowashere/Proyecto-Final-Software/internal/domain/repository"
)

// AccountTxRunner transacción con los repos de cuenta y empleado.
type AccountTxRunner interface {
	RunAccount(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		employeeRepo repository.EmployeeRepository,
	) error) error
}

// EmployeeUseCase gestión de empleados y sus cuentas.
type EmployeeUseCase struct {
	txRunner     AccountTxRunner
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(txRunner AccountTxRunner, employeeRepo repository.EmployeeRepository, userRepo repository.UserRepository) *EmployeeUseCase {
	return &EmployeeUseCase{txRunner: txRunner, employeeRepo: employeeRepo, userRepo: userRepo}
}

// Create crea la cuenta y el empleado en una sola transacción.
// Username repetido → ErrDuplicate.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	username := strings.TrimSpace(in.User.Username)
	if username == "" {
		return nil, domain.Invalid("user.username", "es requerido")
	}
	if len(in.User.Password) < 8 {
		return nil, domain.Invalid("user.password", "debe tener al menos 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.User.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        strings.TrimSpace(in.User.Email),
		FirstName:    in.User.FirstName,
		LastName:     in.User.LastName,
		PasswordHash: string(hash),
		IsStaff:      in.User.IsStaff,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	emp := &entity.Employee{
		ID:       uuid.New().String(),
		UserID:   user.ID,
		User:     user,
		Phone:    in.Phone,
		HireDate: now,
		Active:   true,
	}
	if in.HireDate != nil {
		emp.HireDate = *in.HireDate
	}
	if in.Active != nil {
		emp.Active = *in.Active
	}

	err = uc.txRunner.RunAccount(ctx, func(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository) error {
		existing, err := userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := userRepo.Create(ctx, &user); err != nil {
			return err
		}
		return employeeRepo.Create(ctx, emp)
	})
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponse(emp), nil
}

// GetByID devuelve el empleado o (nil, nil).
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	emp, err := uc.employeeRepo.GetByID(ctx, id)
	if err != nil || emp == nil {
		return nil, err
	}
	return ToEmployeeResponse(emp), nil
}

// Me devuelve el empleado ligado a la cuenta autenticada.
func (uc *EmployeeUseCase) Me(ctx context.Context, userID string) (*dto.EmployeeResponse, error) {
	emp, err := uc.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	return ToEmployeeResponse(emp), nil
}

// List lista empleados activos ordenados por nombre.
func (uc *EmployeeUseCase) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	list, err := uc.employeeRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *ToEmployeeResponse(e))
	}
	return out, nil
}

// Update actualiza empleado y cuenta en una transacción.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	var out *entity.Employee
	err := uc.txRunner.RunAccount(ctx, func(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository) error {
		emp, err := employeeRepo.GetByID(ctx, id)
		if err != nil || emp == nil {
			return err
		}
		u := emp.User
		if in.Email != nil {
			u.Email = strings.TrimSpace(*in.Email)
		}
		if in.FirstName != nil {
			u.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			u.LastName = *in.LastName
		}
		if in.IsStaff != nil {
			u.IsStaff = *in.IsStaff
		}
		if in.Password != nil && *in.Password != "" {
			if len(*in.Password) < 8 {
				return domain.Invalid("password", "debe tener al menos 8 caracteres")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u.PasswordHash = string(hash)
		}
		if in.Phone != nil {
			emp.Phone = *in.Phone
		}
		if in.HireDate != nil {
			emp.HireDate = *in.HireDate
		}
		if in.Active != nil {
			emp.Active = *in.Active
			u.Active = *in.Active
		}
		u.UpdatedAt = time.Now()
		if err := userRepo.Update(ctx, &u); err != nil {
			return err
		}
		emp.User = u
		if err := employeeRepo.Update(ctx, emp); err != nil {
			return err
		}
		out = emp
		return nil
	})
	if err != nil || out == nil {
		return nil, err
	}
	return ToEmployeeResponse(out), nil
}

// Delete elimina el empleado y su cuenta. ErrInUse si tiene ventas o movimientos.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunAccount(ctx, func(userRepo repository.UserRepository, employeeRepo repository.EmployeeRepository) error {
		emp, err := employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if emp == nil {
			return domain.ErrNotFound
		}
		if err := employeeRepo.Delete(ctx, emp.ID); err != nil {
			return err
		}
		return userRepo.Delete(ctx, emp.UserID)
	})
}

// ToUserResponse datos públicos de la cuenta.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role(),
	}
}

// ToEmployeeResponse convierte la entidad en la salida HTTP.
func ToEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:       e.ID,
		User:     ToUserResponse(&e.User),
		FullName: e.User.FullName(),
		Phone:    e.Phone,
		HireDate: e.HireDate,
		Active:   e.Active,
	}
}
