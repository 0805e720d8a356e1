package spin

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const ReasonPayloadInvalid = "SPIN_PAYLOAD_INVALID"

// 金额保留原始数字文本，避免经过 float64
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Converter 服务端下发结果 -> map，nil 表示使用 JSON
type Converter func([]byte) (map[string]any, error)

// Result 一次 spin 的结算结果（每轴可见符号，自上而下）
type Result struct {
	Grid   [][]string      `json:"reels"`
	Payout decimal.Decimal `json:"win"`
}

// JSONConverter JSON 负载
func JSONConverter(raw []byte) (map[string]any, error) {
	data := make(map[string]any)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.BadRequest(ReasonPayloadInvalid, fmt.Sprintf("decode json payload: %v", err))
	}
	return data, nil
}

// ProtoConverter google.protobuf.Struct 负载
func ProtoConverter(raw []byte) (map[string]any, error) {
	s := new(structpb.Struct)
	if err := proto.Unmarshal(raw, s); err != nil {
		return nil, errors.BadRequest(ReasonPayloadInvalid, fmt.Sprintf("failed to unmarshal protobuf: %v", err))
	}
	return s.AsMap(), nil
}

// Decode 用 conv 解码（nil 走 JSON）
func Decode(raw []byte, conv Converter) (*Result, error) {
	if conv == nil {
		conv = JSONConverter
	}
	data, err := conv(raw)
	if err != nil {
		return nil, err
	}
	return FromMap(data)
}

// FromMap 读取 reels / win 字段
func FromMap(data map[string]any) (*Result, error) {
	reels, ok := data["reels"].([]any)
	if !ok {
		return nil, errors.BadRequest(ReasonPayloadInvalid, "payload has no reels")
	}
	r := &Result{Grid: make([][]string, len(reels))}
	for i, reel := range reels {
		col, ok := reel.([]any)
		if !ok {
			return nil, errors.BadRequest(ReasonPayloadInvalid, fmt.Sprintf("reel %d is not a list", i))
		}
		r.Grid[i] = make([]string, len(col))
		for j, sym := range col {
			r.Grid[i][j] = fmt.Sprintf("%v", sym)
		}
	}
	if win, ok := data["win"]; ok && win != nil {
		d, err := decimal.NewFromString(fmt.Sprintf("%v", win))
		if err != nil {
			return nil, errors.BadRequest(ReasonPayloadInvalid, fmt.Sprintf("invalid win %v: %v", win, err))
		}
		r.Payout = d
	}
	return r, nil
}

// EncodeProto 把结果编码为 protobuf Struct，回放/测试使用
func EncodeProto(r *Result) ([]byte, error) {
	reels := make([]any, len(r.Grid))
	for i, col := range r.Grid {
		syms := make([]any, len(col))
		for j, s := range col {
			syms[j] = s
		}
		reels[i] = syms
	}
	win, _ := r.Payout.Float64()
	s, err := structpb.NewStruct(map[string]any{"reels": reels, "win": win})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}
