package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"bnb-wallet/pkg/bnb"
	"bnb-wallet/pkg/config"
	"bnb-wallet/pkg/gasoracle"
	"bnb-wallet/pkg/keysource"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// addKeyFlags 注册私钥来源相关参数
func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().String("private-key", "", "hex 私钥 (不推荐在命令行明文传入)")
	cmd.Flags().String("keystore", "", "Keystore 文件路径")
	cmd.Flags().String("mnemonic", "", "BIP-39 助记词")
	cmd.Flags().String("path", "", "BIP-44 派生路径 (默认 m/44'/60'/0'/0/0)")
}

// keySource 合并命令行参数和配置，命令行优先
func keySource(cmd *cobra.Command, c *config.Config) keysource.Source {
	src := keysource.Source{
		PrivateKey:   c.Wallet.PrivateKey,
		KeystorePath: c.Wallet.KeystorePath,
		Password:     c.Wallet.Password,
		Mnemonic:     c.Wallet.Mnemonic,
		Passphrase:   c.Wallet.Passphrase,
		Path:         c.Wallet.DerivationPath,
	}
	flags := cmd.Flags()
	if v, _ := flags.GetString("private-key"); v != "" {
		src = keysource.Source{PrivateKey: v}
	} else if v, _ := flags.GetString("keystore"); v != "" {
		src = keysource.Source{KeystorePath: v, Password: c.Wallet.Password}
	} else if v, _ := flags.GetString("mnemonic"); v != "" {
		src = keysource.Source{Mnemonic: v, Passphrase: c.Wallet.Passphrase, Path: c.Wallet.DerivationPath}
	}
	if v, _ := flags.GetString("path"); v != "" {
		src.Path = v
	}
	return src
}

// resolveKey 返回私钥和地址；缺少私钥或 keystore 密码时从终端读取
func resolveKey(cmd *cobra.Command, c *config.Config) (string, string, error) {
	src := keySource(cmd, c)
	if src.Kind() == "keystore" && src.Password == "" {
		pw, err := readSecret("请输入 Keystore 密码: ")
		if err != nil {
			return "", "", err
		}
		src.Password = pw
	}

	privateKey, address, err := keysource.Resolve(src)
	if errors.Is(err, keysource.ErrNoKeySource) {
		key, err := readSecret("请输入私钥 (hex): ")
		if err != nil {
			return "", "", err
		}
		return keysource.Resolve(keysource.Source{PrivateKey: key})
	}
	return privateKey, address, err
}

func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("读取输入失败: %w", err)
	}
	return string(b), nil
}

func newOracle(c *config.Config) *gasoracle.Oracle {
	return gasoracle.New(&http.Client{Timeout: c.Etherscan.Timeout}, c.Etherscan.Endpoint)
}

// dialChain 连接节点并组装 Bnb，调用方负责 Close
func dialChain(ctx context.Context, c *config.Config) (*bnb.Bnb, *bnb.NodeProxy, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.Bsc.RpcTimeout)
	defer cancel()
	proxy, err := bnb.DialNode(dialCtx, c.Bsc.RpcUrl, c.Bsc.Network)
	if err != nil {
		return nil, nil, err
	}
	return bnb.New(proxy, newOracle(c), bnb.NewEIP155Signer()), proxy, nil
}

// rpcContext bounds a single command by the configured rpc timeout.
func rpcContext(c *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.Bsc.RpcTimeout)
}
