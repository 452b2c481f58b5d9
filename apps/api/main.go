package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/lakouedu/lakou/apps/api/echo"
	"github.com/lakouedu/lakou/core"
	"github.com/lakouedu/lakou/core/assistant"
	completionsvc "github.com/lakouedu/lakou/services/completion"
	logsvc "github.com/lakouedu/lakou/services/logger"
	"github.com/lakouedu/lakou/storage/datastore"
	pgrepos "github.com/lakouedu/lakou/storage/datastore/postgres"
)

func main() {
	conf := core.NewConfig()
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var logger core.Logger
	if conf.Debug || conf.Rollbar.Token == "" {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := datastore.Open(conf)
	errAndDie(std, err)
	defer func() { _ = db.Close() }()
	errAndDie(std, datastore.Ping(db))

	// set up validation
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	// set up services
	var completer assistant.Completer
	if conf.Completion.APIKey != "" {
		completer = completionsvc.NewOpenAIService(conf.Completion)
	}
	assistantSvc := assistant.NewService(conf, pgrepos.NewAssistantRepository(db), completer, logger)

	// start API server
	shutdown := make(chan struct{})
	app := echoapi.NewServer(&echoapi.Options{
		Conf:         conf,
		Logger:       logger,
		AssistantSvc: assistantSvc,
		Validate:     validate,
		Translator:   translator,
		Shutdown:     shutdown,
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening on " + conf.Server.Address())
		serverErrors <- app.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		errAndDie(std, err)
	case <-quit:
	case <-shutdown:
	}

	// drain in-flight persistence writes, then stop the server
	assistantSvc.Drain()

	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Stop(ctx); err != nil {
		logger.Error("stopping server: " + err.Error())
	}
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
