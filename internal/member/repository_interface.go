package member

import "context"

type Repository interface {
	Create(ctx context.Context, gymID int, name, phone, email string) (*Member, error)
	List(ctx context.Context, gymID int, search string) ([]Member, error)
	GetByID(ctx context.Context, gymID, id int) (*Member, error)
	GetByIDs(ctx context.Context, gymID int, ids []int) ([]Member, error)
}
