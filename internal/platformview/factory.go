package platformview

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/webview/internal/channel"
	"github.com/GriffinCanCode/AgentOS/webview/internal/infrastructure/logging"
)

// FactoryChannel is the channel platform views are created and disposed on.
const FactoryChannel = "flutter/platform_views"

// Factory creates WebViews on request and keeps them by id.
type Factory struct {
	cfg      Config
	defaults map[string]interface{}
	views    sync.Map
	logger   *zap.Logger
}

// NewFactory creates a factory. defaults, which may be nil, are merged under
// the params of every create call.
func NewFactory(cfg Config, defaults map[string]interface{}) *Factory {
	return &Factory{
		cfg:      cfg,
		defaults: defaults,
		logger:   logging.OrNop(cfg.Logger).Named("platform_views"),
	}
}

// Bind installs the factory as the handler of FactoryChannel.
func (f *Factory) Bind() {
	f.cfg.Messenger.SetMessageHandler(FactoryChannel, f)
}

// OnMethodCall handles create and dispose.
func (f *Factory) OnMethodCall(call channel.MethodCall, result channel.Result) {
	var (
		value interface{}
		err   error
	)
	switch call.Method {
	case "create":
		value, err = f.handleCreate(call)
	case "dispose":
		value, err = f.handleDispose(call)
	default:
		result.NotImplemented()
		return
	}

	if err != nil {
		f.logger.Warn("platform view call failed", zap.String("method", call.Method), zap.Error(err))
		channel.Fail(result, err)
		return
	}
	result.Success(value)
}

func (f *Factory) handleCreate(call channel.MethodCall) (interface{}, error) {
	id, err := idArg(call)
	if err != nil {
		return nil, err
	}
	viewType, err := call.StringArg("viewType")
	if err != nil {
		return nil, err
	}

	var params map[string]interface{}
	if raw, ok := call.Argument("params"); ok && raw != nil {
		params, ok = raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: params must be a map, got %T", channel.ErrIllegalArgument, raw)
		}
	}

	if _, err := f.Create(id, viewType, params); err != nil {
		return nil, err
	}
	return id, nil
}

func (f *Factory) handleDispose(call channel.MethodCall) (interface{}, error) {
	id, err := idArg(call)
	if err != nil {
		return nil, err
	}
	if err := f.Dispose(id); err != nil {
		return nil, err
	}
	return nil, nil
}

func idArg(call channel.MethodCall) (int64, error) {
	id, err := call.IntArg("id")
	if err != nil {
		return 0, err
	}
	return int64(id), nil
}

// Create builds and registers view id.
func (f *Factory) Create(id int64, viewType string, params map[string]interface{}) (*WebView, error) {
	if viewType != ViewType {
		return nil, fmt.Errorf("%w: unsupported view type: %s", channel.ErrIllegalArgument, viewType)
	}
	if _, exists := f.views.Load(id); exists {
		return nil, fmt.Errorf("%w: view %d already exists", channel.ErrIllegalState, id)
	}

	w, err := New(f.cfg, id, MergeParams(f.defaults, params))
	if err != nil {
		return nil, err
	}
	f.views.Store(id, w)
	if f.cfg.Metrics != nil {
		f.cfg.Metrics.ViewCreated()
	}
	f.logger.Info("view created", zap.Int64("view_id", id))
	return w, nil
}

// Dispose tears down view id and forgets it.
func (f *Factory) Dispose(id int64) error {
	val, ok := f.views.LoadAndDelete(id)
	if !ok {
		return fmt.Errorf("%w: no view with id %d", channel.ErrIllegalState, id)
	}
	val.(*WebView).Dispose()
	if f.cfg.Metrics != nil {
		f.cfg.Metrics.ViewDisposed()
	}
	f.logger.Info("view disposed", zap.Int64("view_id", id))
	return nil
}

// Get returns view id.
func (f *Factory) Get(id int64) (*WebView, bool) {
	val, ok := f.views.Load(id)
	if !ok {
		return nil, false
	}
	return val.(*WebView), true
}

// IDs returns the ids of all live views in ascending order.
func (f *Factory) IDs() []int64 {
	var ids []int64
	f.views.Range(func(key, _ interface{}) bool {
		ids = append(ids, key.(int64))
		return true
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DisposeAll disposes every live view.
func (f *Factory) DisposeAll() {
	for _, id := range f.IDs() {
		_ = f.Dispose(id)
	}
}

// ViewInfo describes one live view.
type ViewInfo struct {
	ID       int64    `json:"id"`
	Channel  string   `json:"channel"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Channels []string `json:"javascript_channels"`
}

// Stats returns factory statistics.
func (f *Factory) Stats() map[string]interface{} {
	return map[string]interface{}{
		"total_views": len(f.IDs()),
		"view_type":   ViewType,
	}
}

// Describe returns a summary of every live view. It reads view state and
// must run on the UI thread.
func (f *Factory) Describe() []ViewInfo {
	ids := f.IDs()
	infos := make([]ViewInfo, 0, len(ids))
	for _, id := range ids {
		w, ok := f.Get(id)
		if !ok {
			continue
		}
		infos = append(infos, ViewInfo{
			ID:       id,
			Channel:  w.ChannelName(),
			URL:      w.view.URL(),
			Title:    w.view.Title(),
			Channels: w.Channels(),
		})
	}
	return infos
}
