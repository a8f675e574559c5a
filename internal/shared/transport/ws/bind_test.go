package ws

import "testing"

func TestDecodeClientMessage_解析信封(t *testing.T) {
	msg, err := DecodeClientMessage([]byte(`{"type":"game_action","action":{"type":"build","building_type":"farm"}}`))
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if msg.Type != MsgGameAction {
		t.Fatalf("type got=%q", msg.Type)
	}
	if msg.Action["building_type"] != "farm" {
		t.Fatalf("action 未保留原始字段: %v", msg.Action)
	}
}

func TestDecodeClientMessage_非法输入(t *testing.T) {
	cases := []string{`not json`, `[]`, `null`, `{"ready":true}`}
	for _, c := range cases {
		if _, err := DecodeClientMessage([]byte(c)); err == nil {
			t.Fatalf("期望 %q 解析失败", c)
		}
	}
}

func TestBind_弱类型数字(t *testing.T) {
	var out struct {
		Quantity int    `json:"quantity"`
		UnitType string `json:"unit_type"`
	}
	// JSON 数字解出来是 float64
	if err := Bind(map[string]any{"quantity": float64(5), "unit_type": "archers"}, &out); err != nil {
		t.Fatalf("bind 失败: %v", err)
	}
	if out.Quantity != 5 || out.UnitType != "archers" {
		t.Fatalf("bind 结果不符: %+v", out)
	}
	if err := Bind(map[string]any{"quantity": "7"}, &out); err != nil || out.Quantity != 7 {
		t.Fatalf("字符串数字应可弱类型转换, err=%v got=%d", err, out.Quantity)
	}
}
