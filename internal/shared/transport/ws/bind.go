package ws

import (
	"encoding/json"
	"errors"

	"github.com/go-viper/mapstructure/v2"
)

// Bind 把松散的 map（JSON 解出来的 any）解码到目标结构体，字段按 json tag 对齐。
// 开启弱类型：客户端发来的 "5"、5.0 都能落到 int 字段。
func Bind(src any, dst any) error {
	if src == nil {
		return errors.New("ws bind source is nil")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}

// DecodeClientMessage 解析一帧上行 JSON。
func DecodeClientMessage(data []byte) (*ClientMessage, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("ws message is not an object")
	}
	msg := &ClientMessage{}
	if err := Bind(raw, msg); err != nil {
		return nil, err
	}
	if msg.Type == "" {
		return nil, errors.New("ws message type is empty")
	}
	return msg, nil
}
