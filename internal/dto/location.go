package dto

// ── 地点模块 DTO ──

// LocationResponse 地点信息响应
type LocationResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
