package proto

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.minekube.com/veinminer/pkg/message"
	"go.minekube.com/veinminer/pkg/proto/util"
	"go.minekube.com/veinminer/pkg/util/errs"
)

type testListener struct {
	a []*msgA
	b []*msgB
}

type msgA struct{ Value int }

func (m *msgA) Encode(buf *util.Buffer) error { buf.WriteVarInt(m.Value); return nil }
func (m *msgA) Decode(buf *util.Buffer) (err error) {
	m.Value, err = buf.ReadVarInt()
	return
}
func (m *msgA) Handle(l *testListener) error { l.a = append(l.a, m); return nil }

type msgB struct {
	Name string
	On   bool
}

func (m *msgB) Encode(buf *util.Buffer) error {
	buf.WriteString(m.Name)
	buf.WriteBool(m.On)
	return nil
}
func (m *msgB) Decode(buf *util.Buffer) (err error) {
	if m.Name, err = buf.ReadString(); err != nil {
		return err
	}
	m.On, err = buf.ReadBool()
	return
}
func (m *msgB) Handle(l *testListener) error { l.b = append(l.b, m); return nil }

type msgFail struct{}

func (m *msgFail) Encode(*util.Buffer) error  { return nil }
func (m *msgFail) Decode(*util.Buffer) error  { return nil }
func (m *msgFail) Handle(*testListener) error { return errors.New("handler failed") }

var testChannel = message.MustChannelIdentifier("test", "main")

func newTestProtocol(t *testing.T) *Protocol[*testListener, *testListener] {
	p, err := New(testChannel, 3,
		func(r *Registry[*testListener]) error {
			r.MustRegister(&msgA{}, &msgB{}, &msgFail{})
			return nil
		},
		func(r *Registry[*testListener]) error {
			_, err := r.Register(&msgB{})
			return err
		},
	)
	require.NoError(t, err)
	return p
}

func TestRegistryIDsInRegistrationOrder(t *testing.T) {
	r := NewRegistry[*testListener](ServerBound)
	id, err := r.Register(&msgA{})
	require.NoError(t, err)
	assert.Equal(t, MessageID(0), id)
	id, err = r.Register(&msgB{})
	require.NoError(t, err)
	assert.Equal(t, MessageID(1), id)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, MessageID(0), r.IDOf(&msgA{}))
	assert.Equal(t, MessageID(1), r.IDOf(&msgB{Name: "x"}))
	assert.Equal(t, NotFound, r.IDOf(&msgFail{}))
	assert.Equal(t, NotFound, r.IDOf(nil))
	assert.Equal(t, []MessageType{TypeOf(&msgA{}), TypeOf(&msgB{})}, r.Types())
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	r := NewRegistry[*testListener](ClientBound)
	_, err := r.Register(&msgA{})
	require.NoError(t, err)
	_, err = r.Register(&msgA{Value: 1})
	require.ErrorIs(t, err, ErrDuplicateRegistration)
	assert.Equal(t, 1, r.Len())

	assert.Panics(t, func() { r.MustRegister(&msgA{}) })
}

func TestRegistryDecode(t *testing.T) {
	r := NewRegistry[*testListener](ServerBound)
	r.MustRegister(&msgA{}, &msgB{})

	body := new(util.Buffer)
	body.WriteVarInt(1)
	require.NoError(t, (&msgB{Name: "b", On: true}).Encode(body))

	msg, err := r.Read(util.NewBuffer(body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, &msgB{Name: "b", On: true}, msg)

	_, err = r.Read(util.NewBuffer([]byte{0x02, 0x00}))
	require.ErrorIs(t, err, ErrUnknownMessageID)

	_, err = r.Decode(NotFound, util.NewBuffer(nil))
	require.ErrorIs(t, err, ErrUnknownMessageID)

	_, err = r.Read(util.NewBuffer([]byte{0x01, 0x05, 'a'}))
	require.ErrorIs(t, err, ErrMalformedMessage)
	require.ErrorIs(t, err, util.ErrUnderflow)

	_, err = r.Read(util.NewBuffer(nil))
	require.ErrorIs(t, err, ErrMalformedMessage)
}

func TestProtocolSendAndDecode(t *testing.T) {
	p := newTestProtocol(t)
	assert.Equal(t, 3, p.Version())
	assert.Equal(t, "test:main", p.Channel().ID())

	var (
		gotChannel message.ChannelIdentifier
		gotData    []byte
	)
	rcv := message.ReceiverFunc(func(id message.ChannelIdentifier, data []byte) error {
		gotChannel, gotData = id, data
		return nil
	})

	require.NoError(t, p.SendToServer(rcv, &msgA{Value: 300}))
	assert.True(t, message.Equal(testChannel, gotChannel))
	assert.Equal(t, []byte{0x00, 0xAC, 0x02}, gotData)

	msg, err := p.DecodeServerbound(gotData)
	require.NoError(t, err)
	assert.Equal(t, &msgA{Value: 300}, msg)

	// msgB is id 0 clientbound but id 1 serverbound
	require.NoError(t, p.SendToClient(rcv, &msgB{Name: "hi"}))
	assert.Equal(t, byte(0x00), gotData[0])
	cmsg, err := p.DecodeClientbound(gotData)
	require.NoError(t, err)
	assert.Equal(t, &msgB{Name: "hi"}, cmsg)
}

func TestProtocolSendUnregisteredPanics(t *testing.T) {
	p := newTestProtocol(t)
	rcv := message.ReceiverFunc(func(message.ChannelIdentifier, []byte) error { return nil })

	defer func() {
		r := recover()
		require.NotNil(t, r)
		misuse, ok := r.(*ProtocolMisuseError)
		require.True(t, ok, "expected *ProtocolMisuseError, got %T", r)
		assert.Equal(t, ClientBound, misuse.Direction)
		assert.Equal(t, TypeOf(&msgA{}), misuse.Type)
		assert.Contains(t, misuse.Error(), "test:main")
	}()
	_ = p.SendTo(ClientBound, rcv, &msgA{})
}

func TestProtocolReceiverError(t *testing.T) {
	p := newTestProtocol(t)
	sendErr := errors.New("disconnected")
	rcv := message.ReceiverFunc(func(message.ChannelIdentifier, []byte) error { return sendErr })
	require.ErrorIs(t, p.SendToServer(rcv, &msgA{}), sendErr)
}

func TestProtocolHandle(t *testing.T) {
	p := newTestProtocol(t)
	l := new(testListener)

	data, err := p.Encode(ServerBound, &msgB{Name: "b"})
	require.NoError(t, err)
	require.NoError(t, p.HandleServerbound(data, l))
	require.Len(t, l.b, 1)
	assert.Equal(t, "b", l.b[0].Name)

	err = p.HandleServerbound([]byte{0x09}, l)
	require.ErrorIs(t, err, ErrUnknownMessageID)
	assert.True(t, errs.IsSilent(err))

	err = p.HandleServerbound([]byte{0x02}, l)
	require.Error(t, err)
	assert.False(t, errs.IsSilent(err))

	assert.Empty(t, l.a)
}

func TestNewProtocolErrors(t *testing.T) {
	_, err := New[*testListener, *testListener](nil, 1, nil, nil)
	require.Error(t, err)

	_, err = New[*testListener, *testListener](testChannel, -1, nil, nil)
	require.Error(t, err)

	_, err = New[*testListener, *testListener](testChannel, 1,
		func(r *Registry[*testListener]) error {
			if _, err := r.Register(&msgA{}); err != nil {
				return err
			}
			_, err := r.Register(&msgA{})
			return err
		}, nil)
	require.ErrorIs(t, err, ErrDuplicateRegistration)

	assert.Panics(t, func() {
		MustNew[*testListener, *testListener](testChannel, -1, nil, nil)
	})
}

func TestRouter(t *testing.T) {
	p := newTestProtocol(t)
	r := NewRouter[*testListener, *testListener](logr.Discard())
	p.RegisterChannels(r)

	assert.Equal(t, []string{"test:main"}, r.ChannelIDs().UnsortedList())
	id, ok := r.FromID("test:main")
	require.True(t, ok)
	assert.True(t, message.Equal(testChannel, id))

	l := new(testListener)
	data, err := p.Encode(ServerBound, &msgA{Value: 7})
	require.NoError(t, err)

	handled, err := r.HandleServerbound("test:main", data, l)
	require.NoError(t, err)
	assert.True(t, handled)
	require.Len(t, l.a, 1)
	assert.Equal(t, 7, l.a[0].Value)

	// malformed messages are dropped
	handled, err = r.HandleServerbound("test:main", []byte{0x01}, l)
	require.NoError(t, err)
	assert.True(t, handled)

	handled, err = r.HandleServerbound("other:channel", data, l)
	require.NoError(t, err)
	assert.False(t, handled)

	data, err = p.Encode(ClientBound, &msgB{Name: "c"})
	require.NoError(t, err)
	handled, err = r.HandleClientbound("test:main", data, l)
	require.NoError(t, err)
	assert.True(t, handled)
	require.Len(t, l.b, 1)

	r.Unregister(testChannel)
	_, ok = r.FromID("test:main")
	assert.False(t, ok)
	handled, _ = r.HandleClientbound("test:main", data, l)
	assert.False(t, handled)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "ServerBound", ServerBound.String())
	assert.Equal(t, "ClientBound", ClientBound.String())
	assert.Equal(t, "UnknownBound", Direction(9).String())
}
