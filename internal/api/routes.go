package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/coreman2200/funtimes-ledstudio/internal/pattern"
	"github.com/coreman2200/funtimes-ledstudio/internal/studio"
)

type StateResponse struct {
	Body studio.Snapshot
}

type StripRequest struct {
	Body struct {
		LEDCount   *int    `json:"led_count,omitempty" minimum:"1" maximum:"10000" doc:"Number of LEDs"`
		Pattern    *string `json:"pattern,omitempty" example:"rainbow" doc:"Pattern id; unknown ids render solid white"`
		Speed      *int    `json:"speed,omitempty" minimum:"0" maximum:"100" doc:"Animation speed percent"`
		Brightness *int    `json:"brightness,omitempty" minimum:"10" maximum:"100" doc:"Brightness percent"`
	}
}

type ClockRequest struct {
	Action string `path:"action" enum:"start,stop,reset,play" doc:"Clock action"`
}

type ClockResponse struct {
	Body struct {
		State studio.Snapshot `json:"state"`
		Code  string          `json:"code,omitempty" doc:"Firmware, set by play"`
	}
}

type CodeResponse struct {
	Body struct {
		Pattern pattern.ID `json:"pattern"`
		Code    string     `json:"code"`
	}
}

type SuggestRequest struct {
	Body struct {
		Prompt string `json:"prompt" maxLength:"1024" example:"calm ocean at night" doc:"Free-form description"`
		Play   bool   `json:"play,omitempty" doc:"Also start the animation and generate firmware"`
	}
}

type SuggestResponse struct {
	Body struct {
		Pattern pattern.ID `json:"pattern"`
		Code    string     `json:"code,omitempty" doc:"Firmware, present when play was requested"`
	}
}

type PatternsResponse struct {
	Body struct {
		Patterns []studio.PatternInfo `json:"patterns"`
	}
}

type LEDsResponse struct {
	Body struct {
		Frame int      `json:"frame"`
		Hex   []string `json:"hex" doc:"Current colour of each LED"`
	}
}

// Register adds every studio operation to api.
func Register(api huma.API, ctl Controller) {
	huma.Register(api, huma.Operation{
		OperationID: "get-state",
		Method:      http.MethodGet,
		Path:        "/api/state",
		Summary:     "Get session state",
		Tags:        []string{"studio"},
	}, func(ctx context.Context, _ *struct{}) (*StateResponse, error) {
		return &StateResponse{Body: ctl.Snapshot()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-strip",
		Method:      http.MethodPut,
		Path:        "/api/strip",
		Summary:     "Update strip settings",
		Description: "Only the supplied fields change. A running animation is recomputed immediately.",
		Tags:        []string{"studio"},
		Errors:      []int{422},
	}, func(ctx context.Context, in *StripRequest) (*StateResponse, error) {
		if in.Body.LEDCount != nil {
			ctl.SetLEDCount(*in.Body.LEDCount)
		}
		if in.Body.Pattern != nil {
			ctl.SetPattern(pattern.ID(*in.Body.Pattern))
		}
		if in.Body.Speed != nil {
			ctl.SetSpeed(*in.Body.Speed)
		}
		if in.Body.Brightness != nil {
			ctl.SetBrightness(*in.Body.Brightness)
		}
		return &StateResponse{Body: ctl.Snapshot()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "clock-action",
		Method:      http.MethodPost,
		Path:        "/api/clock/{action}",
		Summary:     "Start, stop, reset or play the animation",
		Tags:        []string{"clock"},
		Errors:      []int{422},
	}, func(ctx context.Context, in *ClockRequest) (*ClockResponse, error) {
		resp := &ClockResponse{}
		switch in.Action {
		case "start":
			ctl.Start()
		case "stop":
			ctl.Stop()
		case "reset":
			ctl.Reset()
		case "play":
			resp.Body.Code = ctl.Play()
		default:
			return nil, huma.Error422UnprocessableEntity("unknown action " + in.Action)
		}
		resp.Body.State = ctl.Snapshot()
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "generate-code",
		Method:      http.MethodPost,
		Path:        "/api/code",
		Summary:     "Generate firmware for the current settings",
		Tags:        []string{"code"},
	}, func(ctx context.Context, _ *struct{}) (*CodeResponse, error) {
		resp := &CodeResponse{}
		resp.Body.Code = ctl.GenerateCode()
		resp.Body.Pattern = pattern.ID(ctl.Snapshot().Strip.Pattern)
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-code",
		Method:      http.MethodGet,
		Path:        "/api/code",
		Summary:     "Get the last generated firmware",
		Tags:        []string{"code"},
		Errors:      []int{404},
	}, func(ctx context.Context, _ *struct{}) (*CodeResponse, error) {
		code := ctl.Code()
		if code == "" {
			return nil, huma.Error404NotFound("no firmware generated yet")
		}
		resp := &CodeResponse{}
		resp.Body.Code = code
		resp.Body.Pattern = pattern.ID(ctl.Snapshot().Strip.Pattern)
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "suggest-pattern",
		Method:      http.MethodPost,
		Path:        "/api/suggest",
		Summary:     "Pick a pattern from a description",
		Description: "Keyword match; the first matching keyword wins and sparkle is the fallback. The pattern is selected, and with play the animation starts and firmware is generated.",
		Tags:        []string{"studio"},
	}, func(ctx context.Context, in *SuggestRequest) (*SuggestResponse, error) {
		resp := &SuggestResponse{}
		if in.Body.Play {
			resp.Body.Pattern, resp.Body.Code = ctl.Compose(in.Body.Prompt)
			return resp, nil
		}
		resp.Body.Pattern = ctl.Suggest(in.Body.Prompt)
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-patterns",
		Method:      http.MethodGet,
		Path:        "/api/patterns",
		Summary:     "List registered patterns",
		Tags:        []string{"studio"},
	}, func(ctx context.Context, _ *struct{}) (*PatternsResponse, error) {
		resp := &PatternsResponse{}
		resp.Body.Patterns = ctl.Patterns()
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-leds",
		Method:      http.MethodGet,
		Path:        "/api/leds",
		Summary:     "Get the current LED colours",
		Tags:        []string{"studio"},
	}, func(ctx context.Context, _ *struct{}) (*LEDsResponse, error) {
		leds := ctl.LEDs()
		resp := &LEDsResponse{}
		resp.Body.Frame = ctl.Snapshot().Frame
		resp.Body.Hex = make([]string, len(leds))
		for i, c := range leds {
			resp.Body.Hex[i] = c.Hex()
		}
		return resp, nil
	})
}
