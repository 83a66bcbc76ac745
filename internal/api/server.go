package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/achadosdoados/backend/docs"
	v1 "github.com/achadosdoados/backend/internal/api/handler/v1"
	"github.com/achadosdoados/backend/internal/api/middleware"
	"github.com/achadosdoados/backend/internal/config"
	"github.com/achadosdoados/backend/internal/repository"
	"github.com/achadosdoados/backend/internal/repository/dao"
	"github.com/achadosdoados/backend/internal/service"
	"github.com/achadosdoados/backend/internal/storage"
	"github.com/achadosdoados/backend/internal/token"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	tokens *token.Store
}

func NewServer(conf *config.AppConfig, db *gorm.DB, tokens *token.Store, images *storage.ImageStore) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		tokens: tokens,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	cadastroHandler := s.initCadastroHandler(db)
	demandaHandler := s.initDemandaHandler(db)
	doacaoHandler := s.initDoacaoHandler(db)
	imageHandler := s.initImageHandler(db, images)
	s.MountHandlers(authHandler, cadastroHandler, demandaHandler, doacaoHandler, imageHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	usuarioDAO := dao.NewUsuarioDAO(db)
	repo := repository.NewUsuarioRepository(usuarioDAO)
	svc := service.NewAuthService(repo, s.tokens)
	handler := v1.NewAuthHandler(svc)

	return handler
}

func (s *Server) initCadastroHandler(db *gorm.DB) *v1.CadastroHandler {
	usuarioDAO := dao.NewUsuarioDAO(db)
	repo := repository.NewUsuarioRepository(usuarioDAO)
	svc := service.NewAuthService(repo, s.tokens)
	uSvc := service.NewUsuarioService(repo)
	handler := v1.NewCadastroHandler(svc, uSvc)

	return handler
}

func (s *Server) initDemandaHandler(db *gorm.DB) *v1.DemandaHandler {
	demandaDAO := dao.NewDemandaDAO(db)
	repo := repository.NewDemandaRepository(demandaDAO)
	usuarioRepo := repository.NewUsuarioRepository(dao.NewUsuarioDAO(db))
	svc := service.NewDemandaService(repo, usuarioRepo)
	uSvc := service.NewUsuarioService(usuarioRepo)
	handler := v1.NewDemandaHandler(svc, uSvc)

	return handler
}

func (s *Server) initDoacaoHandler(db *gorm.DB) *v1.DoacaoHandler {
	doacaoDAO := dao.NewDoacaoDAO(db)
	repo := repository.NewDoacaoRepository(doacaoDAO)
	usuarioRepo := repository.NewUsuarioRepository(dao.NewUsuarioDAO(db))
	demandaRepo := repository.NewDemandaRepository(dao.NewDemandaDAO(db))
	svc := service.NewDoacaoService(repo, usuarioRepo, demandaRepo)
	uSvc := service.NewUsuarioService(usuarioRepo)
	authSvc := service.NewAuthService(usuarioRepo, s.tokens)
	handler := v1.NewDoacaoHandler(svc, uSvc, authSvc)

	return handler
}

func (s *Server) initImageHandler(db *gorm.DB, images *storage.ImageStore) *v1.ImageHandler {
	usuarioRepo := repository.NewUsuarioRepository(dao.NewUsuarioDAO(db))
	uSvc := service.NewUsuarioService(usuarioRepo)
	handler := v1.NewImageHandler(uSvc, images)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, cadastroHandler *v1.CadastroHandler, demandaHandler *v1.DemandaHandler, doacaoHandler *v1.DoacaoHandler, imageHandler *v1.ImageHandler) {
	const basePath = "/api"

	public := s.Router.Group(basePath)
	{
		public.POST("/login", authHandler.HandleLogin)
		public.POST("/logout", authHandler.HandleLogout)
		public.GET("/me", authHandler.HandleMe)

		public.POST("/cadastro/doador", cadastroHandler.HandleCadastroDoador)
		public.POST("/cadastro/instituicao", cadastroHandler.HandleCadastroInstituicao)
		public.GET("/instituicoes", cadastroHandler.HandleListInstituicoes)

		public.GET("/demandas", demandaHandler.HandleListDemandas)
		public.GET("/demandas/:id", demandaHandler.HandleGetDemanda)

		// The donation intent endpoint resolves the donor from the bearer
		// token when present and from the doadorId parameter otherwise,
		// so it is mounted outside the authenticated group.
		public.POST("/doacoes", doacaoHandler.HandleRegistrarDoacao)
		public.PUT("/doacoes/:doacaoId/status", doacaoHandler.HandleAtualizarStatus)
		public.GET("/doacoes/doador/:doadorId", doacaoHandler.HandleListDoacoesDoador)
		public.GET("/doacoes/instituicao/:instituicaoId", doacaoHandler.HandleListDoacoesInstituicao)

		public.GET("/portal/instituicoes/:instituicaoId/demandas", demandaHandler.HandleListDemandasInstituicao)

		public.GET("/images/:filename", imageHandler.HandleServeImage)
	}

	portal := s.Router.Group(basePath+"/portal", middleware.NewAuthenticator(s.tokens).RequireToken())
	{
		portal.POST("/instituicoes/:instituicaoId/demandas", demandaHandler.HandleCreateDemanda)
		portal.GET("/instituicoes/:instituicaoId/demandas/:demandaId", demandaHandler.HandleGetDemandaPortal)
		portal.PUT("/instituicoes/:instituicaoId/demandas/:demandaId", demandaHandler.HandleUpdateDemanda)
		portal.DELETE("/instituicoes/:instituicaoId/demandas/:demandaId", demandaHandler.HandleDeleteDemanda)

		portal.POST("/instituicoes/foto", imageHandler.HandleUploadFotoInstituicao)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Achados & Doados API"
	docs.SwaggerInfo.Description = "API do marketplace de doações Achados & Doados."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
