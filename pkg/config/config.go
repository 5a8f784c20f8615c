package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Bsc       BscConfig       `mapstructure:"bsc"`
	Etherscan EtherscanConfig `mapstructure:"etherscan"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Gas       GasConfig       `mapstructure:"gas"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	HttpPort string `mapstructure:"http_port"`
}

type BscConfig struct {
	RpcUrl     string        `mapstructure:"rpc_url"`
	Network    string        `mapstructure:"network"` // "mainnet" or "testnet"
	RpcTimeout time.Duration `mapstructure:"rpc_timeout"`
}

type EtherscanConfig struct {
	ApiKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type WalletConfig struct {
	PrivateKey     string `mapstructure:"private_key"`   // 明文私钥，优先级最高 (通常通过 WALLET_PRIVATE_KEY 传入)
	KeystorePath   string `mapstructure:"keystore_path"` // 本地 Keystore 文件路径
	Password       string `mapstructure:"password"`      // Keystore 密码 (WALLET_PASSWORD)
	Mnemonic       string `mapstructure:"mnemonic"`
	Passphrase     string `mapstructure:"passphrase"`
	DerivationPath string `mapstructure:"derivation_path"`
}

type GasConfig struct {
	DefaultTier string `mapstructure:"default_tier"`
}

var Global Config

// Init 加载全局配置，失败直接退出 (server 启动时使用)
func Init() {
	cfg, err := Load("")
	if err != nil {
		log.Fatalf("Fatal error config file: %s \n", err)
	}
	Global = *cfg
	log.Printf("Configuration loaded successfully. Env: %s, Network: %s", Global.App.Env, Global.Bsc.Network)
}

// Load reads config.yaml from path (or . and ./config when path is empty),
// then applies env overrides such as BSC_RPC_URL or ETHERSCAN_API_KEY.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// 环境变量设置
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &cfg, nil
}

// 所有 key 都需要默认值，否则 AutomaticEnv 不会把环境变量带进 Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.http_port", "8080")

	v.SetDefault("bsc.rpc_url", "https://bsc-dataseed.binance.org")
	v.SetDefault("bsc.network", "mainnet")
	v.SetDefault("bsc.rpc_timeout", 15*time.Second)

	v.SetDefault("etherscan.api_key", "")
	v.SetDefault("etherscan.endpoint", "https://api.etherscan.io/v2/api")
	v.SetDefault("etherscan.timeout", 10*time.Second)

	v.SetDefault("wallet.private_key", "")
	v.SetDefault("wallet.keystore_path", "")
	v.SetDefault("wallet.password", "")
	v.SetDefault("wallet.mnemonic", "")
	v.SetDefault("wallet.passphrase", "")
	v.SetDefault("wallet.derivation_path", "m/44'/60'/0'/0/0")

	v.SetDefault("gas.default_tier", "standard")
}
