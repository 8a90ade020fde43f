package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Leganyst/press-archive/internal/config"
	"github.com/Leganyst/press-archive/internal/db"
	"github.com/Leganyst/press-archive/internal/model"
	"github.com/Leganyst/press-archive/internal/queryset"
	"github.com/Leganyst/press-archive/internal/server"
	"github.com/Leganyst/press-archive/internal/views"
)

func main() {
	// 1. Загружаем конфиг из env.
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	httpCfg := config.LoadHTTPConfig()

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Queryset опубликованных материалов и загрузчик шаблонов.
	articles := queryset.New[model.Article](gormDB, model.ArticleMeta()).
		Filter("status = ?", model.ArticleStatusPublished)
	loader := views.NewDirLoader(httpCfg.TemplateDir)

	// 5. Представления архива.
	listCfg := views.ListDefaults()
	listCfg.PaginateBy = 20
	listCfg.LegacyContext = false

	detailCfg := views.ListDefaults()
	detailCfg.TemplateNameField = "Template"

	archiveCfg := views.ArchiveDefaults()
	archiveCfg.DateField = "published_at"

	yearCfg := archiveCfg
	yearCfg.MakeObjectList = true

	v := server.Views{
		List:    views.NewListView(articles, loader, listCfg),
		Detail:  views.NewDetailView(articles, loader, detailCfg),
		Archive: views.NewArchiveView(articles, loader, archiveCfg),
		Year:    views.NewYearView(articles, loader, yearCfg),
		Month:   views.NewMonthView(articles, loader, archiveCfg),
		Week:    views.NewWeekView(articles, loader, archiveCfg),
	}

	// 6. Настраиваем HTTP-сервер.
	srv := &http.Server{
		Addr:    httpCfg.Addr,
		Handler: server.NewRouter(v),
	}

	log.Printf("press-archive HTTP server listening on %s", httpCfg.Addr)

	// 7. Запускаем сервер в горутине.
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
