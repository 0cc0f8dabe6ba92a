// Code in this file is hand-maintained to mirror the shape mockgen
// would generate for the ChainClient interface (go.uber.org/mock),
// since the interface is small enough to not warrant a go:generate
// step of its own.

package chainclient

import (
	"context"
	"math/big"
	"reflect"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/mock/gomock"
)

// MockChainClient is a gomock-style mock of ChainClient for use in
// table-driven tests that need call expectations. Tests that only
// need a scripted fake (no expectation matching) should prefer the
// lighter FakeChainClient below.
type MockChainClient struct {
	ctrl     *gomock.Controller
	recorder *MockChainClientMockRecorder
}

type MockChainClientMockRecorder struct {
	mock *MockChainClient
}

func NewMockChainClient(ctrl *gomock.Controller) *MockChainClient {
	m := &MockChainClient{ctrl: ctrl}
	m.recorder = &MockChainClientMockRecorder{m}
	return m
}

func (m *MockChainClient) EXPECT() *MockChainClientMockRecorder {
	return m.recorder
}

func (m *MockChainClient) SubscribeLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubscribeLogs", ctx, q, ch)
	sub, _ := ret[0].(ethereum.Subscription)
	err, _ := ret[1].(error)
	return sub, err
}

func (mr *MockChainClientMockRecorder) SubscribeLogs(ctx, q, ch interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubscribeLogs", reflect.TypeOf((*MockChainClient)(nil).SubscribeLogs), ctx, q, ch)
}

func (m *MockChainClient) SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (ethereum.Subscription, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubscribeNewHead", ctx, ch)
	sub, _ := ret[0].(ethereum.Subscription)
	err, _ := ret[1].(error)
	return sub, err
}

func (mr *MockChainClientMockRecorder) SubscribeNewHead(ctx, ch interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubscribeNewHead", reflect.TypeOf((*MockChainClient)(nil).SubscribeNewHead), ctx, ch)
}

func (m *MockChainClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TransactionReceipt", ctx, txHash)
	r, _ := ret[0].(*types.Receipt)
	err, _ := ret[1].(error)
	return r, err
}

func (mr *MockChainClientMockRecorder) TransactionReceipt(ctx, txHash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TransactionReceipt", reflect.TypeOf((*MockChainClient)(nil).TransactionReceipt), ctx, txHash)
}

func (m *MockChainClient) BlockNumber(ctx context.Context) (uint64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BlockNumber", ctx)
	n, _ := ret[0].(uint64)
	err, _ := ret[1].(error)
	return n, err
}

func (mr *MockChainClientMockRecorder) BlockNumber(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BlockNumber", reflect.TypeOf((*MockChainClient)(nil).BlockNumber), ctx)
}

func (m *MockChainClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HeaderByNumber", ctx, number)
	h, _ := ret[0].(*types.Header)
	err, _ := ret[1].(error)
	return h, err
}

func (mr *MockChainClientMockRecorder) HeaderByNumber(ctx, number interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HeaderByNumber", reflect.TypeOf((*MockChainClient)(nil).HeaderByNumber), ctx, number)
}

func (m *MockChainClient) UnlockAccount(ctx context.Context, account common.Address, password string, duration uint64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnlockAccount", ctx, account, password, duration)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockChainClientMockRecorder) UnlockAccount(ctx, account, password, duration interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnlockAccount", reflect.TypeOf((*MockChainClient)(nil).UnlockAccount), ctx, account, password, duration)
}

func (m *MockChainClient) SubmitContractCall(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubmitContractCall", ctx, from, to, data)
	h, _ := ret[0].(common.Hash)
	err, _ := ret[1].(error)
	return h, err
}

func (mr *MockChainClientMockRecorder) SubmitContractCall(ctx, from, to, data interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubmitContractCall", reflect.TypeOf((*MockChainClient)(nil).SubmitContractCall), ctx, from, to, data)
}

// FakeChainClient is a minimal scripted double used by the network and
// confirm package tests, where full gomock call-order expectations are
// more ceremony than the scenario needs.
type FakeChainClient struct {
	mu sync.Mutex

	LogSub     *FakeSubscription
	HeadSub    *FakeSubscription
	Receipts   map[common.Hash]*types.Receipt
	Headers    map[uint64]*types.Header
	HeadNumber uint64

	UnlockCalls  []UnlockCall
	SubmitCalls  []SubmitCall
	SubmitResult common.Hash
	SubmitErr    error
}

type UnlockCall struct {
	Account  common.Address
	Password string
	Duration uint64
}

type SubmitCall struct {
	From common.Address
	To   common.Address
	Data []byte
}

func NewFakeChainClient() *FakeChainClient {
	return &FakeChainClient{
		Receipts: make(map[common.Hash]*types.Receipt),
		Headers:  make(map[uint64]*types.Header),
	}
}

func (f *FakeChainClient) SubscribeLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	sub := f.LogSub
	sub.out = ch
	return sub, nil
}

func (f *FakeChainClient) SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (ethereum.Subscription, error) {
	sub := f.HeadSub
	sub.headOut = ch
	return sub, nil
}

func (f *FakeChainClient) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.Receipts[txHash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (f *FakeChainClient) BlockNumber(ctx context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.HeadNumber, nil
}

func (f *FakeChainClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.Headers[number.Uint64()]
	if !ok {
		return nil, ethereum.NotFound
	}
	return h, nil
}

func (f *FakeChainClient) UnlockAccount(ctx context.Context, account common.Address, password string, duration uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UnlockCalls = append(f.UnlockCalls, UnlockCall{account, password, duration})
	return nil
}

func (f *FakeChainClient) SubmitContractCall(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SubmitCalls = append(f.SubmitCalls, SubmitCall{from, to, data})
	return f.SubmitResult, f.SubmitErr
}

// SetHeadNumber updates the current head height returned by BlockNumber.
func (f *FakeChainClient) SetHeadNumber(n uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HeadNumber = n
}

// FakeSubscription is a minimal ethereum.Subscription double whose Err
// channel can be closed to simulate a transport failure.
type FakeSubscription struct {
	errCh   chan error
	out     chan<- types.Log
	headOut chan<- *types.Header
	once    sync.Once
}

func NewFakeSubscription() *FakeSubscription {
	return &FakeSubscription{errCh: make(chan error, 1)}
}

func (s *FakeSubscription) Unsubscribe() {
	s.once.Do(func() { close(s.errCh) })
}

func (s *FakeSubscription) Err() <-chan error {
	return s.errCh
}

// Fail pushes a terminal error onto Err(), as a subscription would on
// transport loss.
func (s *FakeSubscription) Fail(err error) {
	select {
	case s.errCh <- err:
	default:
	}
}

// Deliver sends lg on the subscription's log channel, as the
// transport would when a matching event arrives. The subscription
// must already be attached via SubscribeLogs.
func (s *FakeSubscription) Deliver(lg types.Log) {
	s.out <- lg
}

// DeliverHead sends h on the subscription's new-head channel.
func (s *FakeSubscription) DeliverHead(h *types.Header) {
	s.headOut <- h
}
