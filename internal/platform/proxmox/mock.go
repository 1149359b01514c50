package proxmox

import "context"

// MockClient is a configurable mock implementation of HostManager for
// testing. Each method delegates to an optional Func field; unset fields
// return benign defaults.
type MockClient struct {
	CreateInstanceFunc      func(ctx context.Context, opts InstanceCreateOpts) error
	StartInstanceFunc       func(ctx context.Context, id int) error
	InstanceStatusFunc      func(ctx context.Context, id int) (InstanceState, error)
	DestroyInstanceFunc     func(ctx context.Context, id int) error
	WaitForAddressFunc      func(ctx context.Context, id int) (string, error)
	ExistingConfigIDsFunc   func(ctx context.Context) (map[int]struct{}, error)
	ExistingVolumeNamesFunc func(ctx context.Context) ([]string, error)
	NextIDFunc              func(ctx context.Context) (int, error)
	ExecFunc                func(ctx context.Context, id int, script string) (ExecResult, error)
}

var _ HostManager = (*MockClient)(nil)

func (m *MockClient) CreateInstance(ctx context.Context, opts InstanceCreateOpts) error {
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, opts)
	}
	return nil
}

func (m *MockClient) StartInstance(ctx context.Context, id int) error {
	if m.StartInstanceFunc != nil {
		return m.StartInstanceFunc(ctx, id)
	}
	return nil
}

func (m *MockClient) InstanceStatus(ctx context.Context, id int) (InstanceState, error) {
	if m.InstanceStatusFunc != nil {
		return m.InstanceStatusFunc(ctx, id)
	}
	return StateRunning, nil
}

func (m *MockClient) DestroyInstance(ctx context.Context, id int) error {
	if m.DestroyInstanceFunc != nil {
		return m.DestroyInstanceFunc(ctx, id)
	}
	return nil
}

func (m *MockClient) WaitForAddress(ctx context.Context, id int) (string, error) {
	if m.WaitForAddressFunc != nil {
		return m.WaitForAddressFunc(ctx, id)
	}
	return "192.0.2.10", nil
}

func (m *MockClient) ExistingConfigIDs(ctx context.Context) (map[int]struct{}, error) {
	if m.ExistingConfigIDsFunc != nil {
		return m.ExistingConfigIDsFunc(ctx)
	}
	return map[int]struct{}{}, nil
}

func (m *MockClient) ExistingVolumeNames(ctx context.Context) ([]string, error) {
	if m.ExistingVolumeNamesFunc != nil {
		return m.ExistingVolumeNamesFunc(ctx)
	}
	return nil, nil
}

func (m *MockClient) NextID(ctx context.Context) (int, error) {
	if m.NextIDFunc != nil {
		return m.NextIDFunc(ctx)
	}
	return 100, nil
}

func (m *MockClient) Exec(ctx context.Context, id int, script string) (ExecResult, error) {
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, id, script)
	}
	return ExecResult{ExitCode: 0}, nil
}
