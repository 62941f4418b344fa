package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/arifshehab/Capstone-Project/internal/middleware"
	"github.com/arifshehab/Capstone-Project/internal/repository"
	"github.com/arifshehab/Capstone-Project/internal/service"
	"github.com/arifshehab/Capstone-Project/internal/web"
)

type Deps struct {
	Store     repository.Repository
	Trades    *service.TradeService
	Views     *service.ViewService
	Shortlist *service.ShortlistService
	Catalog   *service.BondCatalogService
	Analytics *service.AnalyticsService
	Logger    *zap.Logger
}

// NewRouter builds the gin engine with every page and API route mounted.
func NewRouter(d Deps) (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.RequestID(d.Logger))
	engine.Use(middleware.WriteAudit(d.Logger))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tmpl)
	engine.StaticFS("/static", http.FS(web.Static()))

	(&HealthHandler{Store: d.Store}).Register(engine)
	if err := RegisterDocs(engine); err != nil {
		return nil, err
	}
	(&PageHandler{
		Trades:    d.Trades,
		Views:     d.Views,
		Analytics: d.Analytics,
		Logger:    d.Logger,
	}).Register(engine)
	(&StockHandler{
		Trades:    d.Trades,
		Views:     d.Views,
		Shortlist: d.Shortlist,
		Logger:    d.Logger,
	}).Register(engine)
	(&BondHandler{
		Trades:  d.Trades,
		Views:   d.Views,
		Catalog: d.Catalog,
		Logger:  d.Logger,
	}).Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return engine, nil
}
