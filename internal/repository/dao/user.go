package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUsuarioEmailExists  = errors.New("já existe conta com o e-mail informado")
	ErrUsuarioNotFound     = errors.New("usuário não encontrado")
	ErrDoadorNotFound      = errors.New("doador não encontrado")
	ErrInstituicaoNotFound = errors.New("instituição não encontrada")
)

// Usuario is the base row shared by both user variants. The subtype
// tables are keyed by the same id (joined-table inheritance).
type Usuario struct {
	ID uint `gorm:"primaryKey"`

	Nome  string `gorm:"not null"`
	Email string `gorm:"unique;not null"`
	Senha string `gorm:"not null"`

	Tipo string `gorm:"not null"` // "DOADOR" or "INSTITUICAO"

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

type Doador struct {
	UsuarioID uint    `gorm:"primaryKey"`
	Usuario   Usuario `gorm:"foreignKey:UsuarioID"`

	Cep       string
	Cidade    string
	Estado    string
	Latitude  *float64
	Longitude *float64
}

func (Doador) TableName() string {
	return "doadores"
}

type Instituicao struct {
	UsuarioID uint    `gorm:"primaryKey"`
	Usuario   Usuario `gorm:"foreignKey:UsuarioID"`

	Endereco string `gorm:"size:255"`
	Telefone string `gorm:"size:20"`
	FotoURL  string `gorm:"size:500"`

	Cep       string
	Cidade    string
	Estado    string
	Numero    string
	Latitude  *float64
	Longitude *float64
}

func (Instituicao) TableName() string {
	return "instituicoes"
}

type UsuarioDAO struct {
	db *gorm.DB
}

func NewUsuarioDAO(db *gorm.DB) *UsuarioDAO {
	return &UsuarioDAO{
		db: db,
	}
}

// InsertDoador writes the base row and the subtype row in one
// transaction so a failure leaves no partial user behind.
func (d *UsuarioDAO) InsertDoador(ctx context.Context, doador Doador) (Doador, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doador.Usuario).Error; err != nil {
			return err
		}

		doador.UsuarioID = doador.Usuario.ID

		return tx.Omit("Usuario").Create(&doador).Error
	})
	if err != nil {
		if isUniqueEmailViolation(err) {
			return Doador{}, ErrUsuarioEmailExists
		}

		return Doador{}, err
	}

	return doador, nil
}

func (d *UsuarioDAO) InsertInstituicao(ctx context.Context, instituicao Instituicao) (Instituicao, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&instituicao.Usuario).Error; err != nil {
			return err
		}

		instituicao.UsuarioID = instituicao.Usuario.ID

		return tx.Omit("Usuario").Create(&instituicao).Error
	})
	if err != nil {
		if isUniqueEmailViolation(err) {
			return Instituicao{}, ErrUsuarioEmailExists
		}

		return Instituicao{}, err
	}

	return instituicao, nil
}

func (d *UsuarioDAO) FindByID(ctx context.Context, id uint) (Usuario, error) {
	var usuario Usuario

	result := d.db.WithContext(ctx).First(&usuario, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Usuario{}, ErrUsuarioNotFound
		}

		return Usuario{}, result.Error
	}

	return usuario, nil
}

func (d *UsuarioDAO) FindByEmail(ctx context.Context, email string) (Usuario, error) {
	var usuario Usuario

	result := d.db.WithContext(ctx).First(&usuario, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Usuario{}, ErrUsuarioNotFound
		}

		return Usuario{}, result.Error
	}

	return usuario, nil
}

func (d *UsuarioDAO) FindDoadorByUsuarioID(ctx context.Context, id uint) (Doador, error) {
	var doador Doador

	result := d.db.WithContext(ctx).Preload("Usuario").First(&doador, "usuario_id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Doador{}, ErrDoadorNotFound
		}

		return Doador{}, result.Error
	}

	return doador, nil
}

func (d *UsuarioDAO) FindInstituicaoByUsuarioID(ctx context.Context, id uint) (Instituicao, error) {
	var instituicao Instituicao

	result := d.db.WithContext(ctx).Preload("Usuario").First(&instituicao, "usuario_id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Instituicao{}, ErrInstituicaoNotFound
		}

		return Instituicao{}, result.Error
	}

	return instituicao, nil
}

func (d *UsuarioDAO) FindAllInstituicoes(ctx context.Context) ([]Instituicao, error) {
	var instituicoes []Instituicao

	result := d.db.WithContext(ctx).Preload("Usuario").Find(&instituicoes)
	if result.Error != nil {
		return nil, result.Error
	}

	return instituicoes, nil
}

func (d *UsuarioDAO) UpdateInstituicaoFotoURL(ctx context.Context, id uint, fotoURL string) error {
	result := d.db.WithContext(ctx).
		Model(&Instituicao{}).
		Where("usuario_id = ?", id).
		Update("foto_url", fotoURL)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrInstituicaoNotFound
	}

	return nil
}

func isUniqueEmailViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
