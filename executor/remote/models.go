package remote

import "github.com/jotspot/inktex/executor"

// wireTensor is the JSON form of a tensor.
type wireTensor struct {
	Shape []int64   `json:"shape"`
	Data  []float32 `json:"data"`
}

func toWire(t executor.Tensor) wireTensor {
	return wireTensor{Shape: t.Shape, Data: t.Data}
}

func fromWire(t wireTensor) executor.Tensor {
	return executor.Tensor{Shape: t.Shape, Data: t.Data}
}

type createSessionRequest struct {
	Model   string `json:"model"`
	Backend string `json:"backend,omitempty"`
	Threads int    `json:"threads,omitempty"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

type encodeRequest struct {
	SessionID string     `json:"session_id"`
	Pixels    wireTensor `json:"pixels"`
	Mask      wireTensor `json:"mask"`
}

type encodeResponse struct {
	Features wireTensor `json:"features"`
	EncMask  wireTensor `json:"enc_mask"`
}

type decodeStepRequest struct {
	SessionID string     `json:"session_id"`
	Features  wireTensor `json:"features"`
	EncMask   wireTensor `json:"enc_mask"`
	IDs       []int64    `json:"ids"`
}

type decodeStepResponse struct {
	Logits wireTensor `json:"logits"`
}

type releaseRequest struct {
	SessionID string `json:"session_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}
