package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/achadosdoados/backend/internal/domain"
)

var ErrDemandaNotFound = errors.New("demanda não encontrada")

type Demanda struct {
	ID uint `gorm:"primaryKey"`

	Titulo              string `gorm:"size:150;not null"`
	Categoria           string `gorm:"size:100;not null"`
	Descricao           string `gorm:"type:text"`
	QuantidadeDescricao string `gorm:"size:100"`
	Status              string `gorm:"size:50"`
	NivelUrgencia       string `gorm:"size:50"`

	PrazoDesejado *domain.Date
	MetaNumerica  *int

	InstituicaoID uint        `gorm:"not null;index"`
	Instituicao   Instituicao `gorm:"foreignKey:InstituicaoID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Demanda) TableName() string {
	return "demandas"
}

type DemandaDAO struct {
	db *gorm.DB
}

func NewDemandaDAO(db *gorm.DB) *DemandaDAO {
	return &DemandaDAO{
		db: db,
	}
}

func (d *DemandaDAO) Insert(ctx context.Context, demanda Demanda) (Demanda, error) {
	result := d.db.WithContext(ctx).Omit("Instituicao").Create(&demanda)
	if result.Error != nil {
		return Demanda{}, result.Error
	}

	return d.FindByID(ctx, demanda.ID)
}

func (d *DemandaDAO) Update(ctx context.Context, demanda Demanda) (Demanda, error) {
	// Save writes every column; absent fields become NULL.
	result := d.db.WithContext(ctx).Omit("Instituicao").Save(&demanda)
	if result.Error != nil {
		return Demanda{}, result.Error
	}

	return d.FindByID(ctx, demanda.ID)
}

func (d *DemandaDAO) FindByID(ctx context.Context, id uint) (Demanda, error) {
	var demanda Demanda

	result := d.db.WithContext(ctx).
		Preload("Instituicao").
		Preload("Instituicao.Usuario").
		First(&demanda, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Demanda{}, ErrDemandaNotFound
		}

		return Demanda{}, result.Error
	}

	return demanda, nil
}

func (d *DemandaDAO) FindAll(ctx context.Context) ([]Demanda, error) {
	var demandas []Demanda

	result := d.db.WithContext(ctx).
		Preload("Instituicao").
		Preload("Instituicao.Usuario").
		Find(&demandas)
	if result.Error != nil {
		return nil, result.Error
	}

	return demandas, nil
}

func (d *DemandaDAO) FindAllByTituloContaining(ctx context.Context, titulo string) ([]Demanda, error) {
	var demandas []Demanda

	result := d.db.WithContext(ctx).
		Preload("Instituicao").
		Preload("Instituicao.Usuario").
		Where("titulo ILIKE ?", "%"+titulo+"%").
		Find(&demandas)
	if result.Error != nil {
		return nil, result.Error
	}

	return demandas, nil
}

func (d *DemandaDAO) FindAllByInstituicaoID(ctx context.Context, instituicaoID uint) ([]Demanda, error) {
	var demandas []Demanda

	result := d.db.WithContext(ctx).
		Preload("Instituicao").
		Preload("Instituicao.Usuario").
		Where("instituicao_id = ?", instituicaoID).
		Find(&demandas)
	if result.Error != nil {
		return nil, result.Error
	}

	return demandas, nil
}
