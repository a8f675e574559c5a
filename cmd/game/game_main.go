package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	roomactor "Conquest/internal/room/actor"
	"Conquest/internal/room/actors"
	"Conquest/internal/room/dc"
	"Conquest/internal/room/interfaces"
	"Conquest/internal/shared/logs"
	"Conquest/internal/shared/serverconfig"
	"Conquest/internal/shared/session"
	transporthttp "Conquest/internal/shared/transport/http"
	"Conquest/internal/shared/transport/http/middleware"
	"Conquest/internal/shared/transport/ws"
	"Conquest/internal/shared/utils"
	"Conquest/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfgName := flag.String("config", "", "path to conf.yml")
	flag.Parse()

	v := serverconfig.Load(*cfgName)
	conf := serverconfig.Conf
	if err := logs.Init("game", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("conf", conf))

	serverconfig.Watch(v, func(fresh serverconfig.Config) {
		logs.SetLevel(fresh.Log.Level)
		logs.Info("log level reloaded", zap.String("level", fresh.Log.Level))
	})

	if err := utils.InitSnowflake(int64(conf.Logic.ServerID)); err != nil {
		logs.Fatal("init snowflake failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openArchive(ctx, conf)
	if err != nil {
		logs.Fatal("open match archive failed", zap.Error(err))
	}
	log := logx.NewZapLogger(logs.Logger())
	archive := dc.NewMatchDC(repo, time.Duration(conf.Archive.FlushEveryMS)*time.Millisecond, log)

	registry := session.NewRegistry(log)
	rt := roomactor.NewRuntime(actors.Deps{
		Registry: registry,
		Archive:  archive,
		Log:      log,
		Options: actors.RoomOptions{
			MaxPlayers:       conf.Room.MaxPlayers,
			MinPlayers:       conf.Room.MinPlayers,
			EnforceTurnOrder: conf.Room.EnforceTurnOrder,
			IdleTTL:          conf.Room.IdleTTL(),
			FinishedTTL:      conf.Room.FinishedTTL(),
		},
	}, conf.Room.AskTimeout())

	cors := middleware.CorsConfig{
		AllowedOrigins: conf.GameServer.AllowedOrigins,
		AllowAll:       conf.GameServer.AllowAllOrigins,
	}
	wsOpts := ws.Options{
		SendBuffer:   conf.WS.SendBuffer,
		ReadLimit:    conf.WS.ReadLimit,
		WriteTimeout: time.Duration(conf.WS.WriteWaitMS) * time.Millisecond,
		PongTimeout:  time.Duration(conf.WS.PongWaitMS) * time.Millisecond,
		RateLimit:    conf.WS.RateLimit,
		RateBurst:    conf.WS.RateBurst,
	}
	room := interfaces.New(rt, archive, cors.Allowed, wsOpts, log)

	if !conf.Log.Dev {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	host := conf.GameServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, conf.GameServer.Port)
	server := transporthttp.NewHttpServer(addr, engine, log, cors)
	room.HttpRegister(server.Group())

	errCh := make(chan error, 1)
	go func() {
		logs.Info("game server started", zap.String("addr", addr))
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("game http serve failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		logs.Error("服务异常退出", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Warn("http shutdown", zap.Error(err))
	}
	rt.Shutdown()
	if err := archive.Close(shutdownCtx); err != nil {
		logs.Warn("match archive not fully flushed", zap.Error(err), zap.Int("pending", archive.Pending()))
	}
	if err := closeRepo(shutdownCtx); err != nil {
		logs.Warn("close match archive store", zap.Error(err))
	}
}
