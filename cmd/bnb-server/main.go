package main

import (
	"context"
	"errors"
	"net/http"

	"bnb-wallet/internal/handler"
	"bnb-wallet/internal/server"
	"bnb-wallet/internal/service"
	"bnb-wallet/pkg/bnb"
	"bnb-wallet/pkg/config"
	"bnb-wallet/pkg/gasoracle"
	"bnb-wallet/pkg/keysource"
	"bnb-wallet/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 0. 初始化 Config
	config.Init()
	cfg := config.Global

	// 1. 初始化 Logger
	logger.Init(cfg.App.Env, cfg.App.LogLevel)
	defer logger.Sync()

	// 2. 加载热钱包私钥 (private_key > keystore > mnemonic)，都没有则只读模式
	privateKey, from, err := keysource.Resolve(keysource.Source{
		PrivateKey:   cfg.Wallet.PrivateKey,
		KeystorePath: cfg.Wallet.KeystorePath,
		Password:     cfg.Wallet.Password,
		Mnemonic:     cfg.Wallet.Mnemonic,
		Passphrase:   cfg.Wallet.Passphrase,
		Path:         cfg.Wallet.DerivationPath,
	})
	switch {
	case errors.Is(err, keysource.ErrNoKeySource):
		logger.Warn("未配置热钱包私钥, /api/v1/transfer 不可用")
	case err != nil:
		logger.Fatal("加载热钱包失败", zap.Error(err))
	default:
		logger.Info("热钱包已加载", zap.String("address", from))
	}

	// 3. 连接 BSC 节点
	dialCtx, cancel := context.WithTimeout(context.Background(), cfg.Bsc.RpcTimeout)
	proxy, err := bnb.DialNode(dialCtx, cfg.Bsc.RpcUrl, cfg.Bsc.Network)
	cancel()
	if err != nil {
		logger.Fatal("BSC RPC 连接失败", zap.Error(err))
	}
	defer proxy.Close()

	// 4. Gas oracle + 转账编排
	oracle := gasoracle.New(&http.Client{Timeout: cfg.Etherscan.Timeout}, cfg.Etherscan.Endpoint)
	chain := bnb.New(proxy, oracle, bnb.NewEIP155Signer())

	svc := service.NewTransferService(chain, oracle, service.Options{
		PrivateKey:  privateKey,
		From:        from,
		ApiKey:      cfg.Etherscan.ApiKey,
		DefaultTier: cfg.Gas.DefaultTier,
	})

	// 5. HTTP Router
	r := server.NewHTTPRouter(handler.NewTransferHandler(svc))

	// 6. 启动应用 (阻塞直到 SIGINT/SIGTERM)
	app := server.New(server.Config{HttpPort: cfg.App.HttpPort}, r)
	app.Run()

	logger.Info("系统已退出")
}
