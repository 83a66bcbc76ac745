package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrDoacaoNotFound = errors.New("doação não encontrada")

type Doacao struct {
	ID uint `gorm:"primaryKey"`

	Data   time.Time `gorm:"not null"`
	Status string    `gorm:"size:50"`

	DoadorID uint   `gorm:"not null;index"`
	Doador   Doador `gorm:"foreignKey:DoadorID"`

	DemandaID uint    `gorm:"not null;index"`
	Demanda   Demanda `gorm:"foreignKey:DemandaID"`
}

func (Doacao) TableName() string {
	return "doacoes"
}

type DoacaoDAO struct {
	db *gorm.DB
}

func NewDoacaoDAO(db *gorm.DB) *DoacaoDAO {
	return &DoacaoDAO{
		db: db,
	}
}

func (d *DoacaoDAO) Insert(ctx context.Context, doacao Doacao) (Doacao, error) {
	result := d.db.WithContext(ctx).Omit("Doador", "Demanda").Create(&doacao)
	if result.Error != nil {
		return Doacao{}, result.Error
	}

	return d.FindByID(ctx, doacao.ID)
}

func (d *DoacaoDAO) FindByID(ctx context.Context, id uint) (Doacao, error) {
	var doacao Doacao

	result := d.db.WithContext(ctx).
		Preload("Doador").
		Preload("Doador.Usuario").
		Preload("Demanda").
		Preload("Demanda.Instituicao").
		Preload("Demanda.Instituicao.Usuario").
		First(&doacao, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Doacao{}, ErrDoacaoNotFound
		}

		return Doacao{}, result.Error
	}

	return doacao, nil
}

func (d *DoacaoDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Doacao{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrDoacaoNotFound
	}

	return nil
}

func (d *DoacaoDAO) FindAllByDoadorID(ctx context.Context, doadorID uint) ([]Doacao, error) {
	var doacoes []Doacao

	result := d.db.WithContext(ctx).
		Preload("Doador").
		Preload("Doador.Usuario").
		Preload("Demanda").
		Preload("Demanda.Instituicao").
		Preload("Demanda.Instituicao.Usuario").
		Where("doador_id = ?", doadorID).
		Find(&doacoes)
	if result.Error != nil {
		return nil, result.Error
	}

	return doacoes, nil
}

// FindAllByInstituicaoID walks Doacao -> Demanda -> Instituicao to list
// every donation received against the institution's demands.
func (d *DoacaoDAO) FindAllByInstituicaoID(ctx context.Context, instituicaoID uint) ([]Doacao, error) {
	var doacoes []Doacao

	result := d.db.WithContext(ctx).
		Preload("Doador").
		Preload("Doador.Usuario").
		Preload("Demanda").
		Preload("Demanda.Instituicao").
		Preload("Demanda.Instituicao.Usuario").
		Joins("JOIN demandas ON demandas.id = doacoes.demanda_id").
		Where("demandas.instituicao_id = ?", instituicaoID).
		Find(&doacoes)
	if result.Error != nil {
		return nil, result.Error
	}

	return doacoes, nil
}
