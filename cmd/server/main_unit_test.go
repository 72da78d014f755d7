package main

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"creatorverse.backend/internal/config"
	plog "creatorverse.backend/pkg/logger"
)

func withMainHooks(t *testing.T) {
	t.Helper()
	origLoadDotenv := loadDotenv
	origLoadCfg := loadCfg
	origInitLog := initLog
	origInitRedis := initRedis
	origOpenDB := openDB
	origParseTemplates := parseTemplates
	origRunServer := runServer
	origNotifySignals := notifySignals
	origStopSignals := stopSignals

	t.Cleanup(func() {
		notifySignals = origNotifySignals
		stopSignals = origStopSignals
		loadDotenv = origLoadDotenv
		loadCfg = origLoadCfg
		initLog = origInitLog
		initRedis = origInitRedis
		openDB = origOpenDB
		parseTemplates = origParseTemplates
		runServer = origRunServer
	})
}

func baseTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "18080",
			Env:            "development",
			AllowedOrigins: "*",
		},
		Database: config.DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			DBName:   "creatorverse",
			SSLMode:  "disable",
		},
		Redis: config.RedisConfig{
			URL:      "redis://localhost:6379",
			PASSWORD: "",
		},
		Store: config.StoreConfig{
			CallTimeout: time.Second,
			SubmitTTL:   time.Minute,
		},
		Jobs: config.JobsConfig{
			HealthInterval: time.Hour,
		},
	}
}

func sqliteDB(name string) func(string) (*gorm.DB, error) {
	return func(string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	}
}

func TestRunMainProcess_RedisInitErrorIsNotFatal(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return errors.New("redis down") }
	openDB = sqliteDB("main_redis_down")

	served := false
	runServer = func(*http.Server) error {
		served = true
		return nil
	}

	require.NoError(t, runMainProcess())
	require.True(t, served)
}

func TestRunMainProcess_DBOpenError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = func(string) (*gorm.DB, error) { return nil, errors.New("db open failed") }

	require.Error(t, runMainProcess())
}

func TestRunMainProcess_TemplateError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = sqliteDB("main_template_err")
	parseTemplates = func() (*template.Template, error) { return nil, errors.New("bad template") }

	err := runMainProcess()
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad template")
}

func TestRunMainProcess_ServerRunError(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = sqliteDB("main_server_err")
	runServer = func(*http.Server) error { return errors.New("listen failed") }

	err := runMainProcess()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to start server")
}

func TestRunMainProcess_SuccessPath(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return errors.New("no .env") }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = sqliteDB("main_success")

	var routes gin.RoutesInfo
	var addr string
	runServer = func(srv *http.Server) error {
		addr = srv.Addr
		routes = srv.Handler.(*gin.Engine).Routes()
		return nil
	}

	require.NoError(t, runMainProcess())
	require.Equal(t, ":18080", addr)
	require.NotEmpty(t, routes)
}

func TestRunMainProcess_SigtermShutsDownServer(t *testing.T) {
	withMainHooks(t)

	loadDotenv = func(...string) error { return nil }
	loadCfg = baseTestConfig
	initLog = plog.Init
	initRedis = func(string, string) error { return nil }
	openDB = sqliteDB("main_sigterm")

	var quit chan<- os.Signal
	notifySignals = func(c chan<- os.Signal, _ ...os.Signal) { quit = c }
	stopSignals = func(chan<- os.Signal) {}

	healthStatus := make(chan int, 1)
	runServer = func(srv *http.Server) error {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return err
		}
		go func() {
			resp, err := http.Get(fmt.Sprintf("http://%s/health", ln.Addr()))
			if err == nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				healthStatus <- resp.StatusCode
			} else {
				healthStatus <- 0
			}
			quit <- syscall.SIGTERM
		}()
		return srv.Serve(ln)
	}

	done := make(chan error, 1)
	go func() { done <- runMainProcess() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runMainProcess still running after SIGTERM")
	}
	require.Equal(t, http.StatusOK, <-healthStatus)
}
