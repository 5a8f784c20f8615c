package types

// UnsignedTransaction is a legacy BSC transfer waiting to be signed.
// Quantities are strings the way the signer expects them:
// Nonce is decimal, Gas/GasPrice/Value are hex quantities (0x prefix optional).
type UnsignedTransaction struct {
	Nonce    string `json:"nonce"`          // 账户 nonce (十进制)
	From     string `json:"from"`           // 发送方地址
	To       string `json:"to"`             // 接收方地址
	Gas      string `json:"gas"`            // Gas Limit (hex)
	GasPrice string `json:"gasPrice"`       // Gas Price in wei (hex)
	Value    string `json:"value"`          // 金额 in wei (hex)
	Data     string `json:"data,omitempty"` // 合约 Data (hex)

	// ChainID for EIP-155 replay protection (56 mainnet, 97 testnet)
	ChainID int64 `json:"chainId"`
}

// SignedTransaction represents the result of the signing process.
type SignedTransaction struct {
	TxHash string `json:"tx_hash"` // Transaction Hash
	RawTx  string `json:"raw_tx"`  // RLP encoded hex string, without 0x
}
