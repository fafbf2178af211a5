package rpc

import (
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/termcastio/termcast-server/internal/metrics"
	"github.com/termcastio/termcast-server/internal/rpc/termcastpb"
	"github.com/termcastio/termcast-server/internal/session"
)

// outBuffer bounds frames queued for the terminal client: acks plus relayed
// viewer input.
const outBuffer = 64

// Stream attaches a terminal client to its session. The first frame must
// carry the session name and writer token; every later frame is a shell
// event (open, close, resize, output). Viewer input flows back as server
// frames. The stream ends when the client hangs up, the connection drops,
// or the session is closed underneath it.
func (s *Service) Stream(stream termcastpb.TermcastService_StreamServer) error {
	first, err := stream.Recv()
	if err != nil {
		return err
	}
	if first.GetSessionName() == "" || first.GetToken() == "" {
		return status.Error(codes.Unauthenticated, "first frame must carry session name and token")
	}
	sess, err := s.registry.Get(first.GetSessionName())
	if err != nil {
		return status.Error(codes.NotFound, "session not found")
	}
	if err := s.registry.VerifyToken(first.GetSessionName(), first.GetToken()); err != nil {
		return status.Error(codes.Unauthenticated, "invalid writer token")
	}

	metrics.StreamAttached()
	defer metrics.StreamDetached()

	logger := s.logger.With(zap.String("session", sess.Name()))
	logger.Info("terminal client attached")
	defer logger.Info("terminal client detached")

	out := make(chan *termcastpb.ServerFrame, outBuffer)
	stop := make(chan struct{})
	var stopOnce sync.Once
	stopSend := func() { stopOnce.Do(func() { close(stop) }) }

	// Single sender: gRPC streams do not allow concurrent Send.
	errCh := make(chan error, 3)
	go func() {
		for {
			select {
			case <-stop:
				return
			case frame := <-out:
				if err := stream.Send(frame); err != nil {
					errCh <- err
					return
				}
			}
		}
	}()

	send := func(frame *termcastpb.ServerFrame) bool {
		select {
		case out <- frame:
			return true
		case <-stop:
			return false
		case <-stream.Context().Done():
			return false
		}
	}

	// Relay viewer input, resize and open-shell requests to the client.
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-sess.Done():
				return
			case in := <-sess.Input():
				if !send(frameFromInput(in)) {
					return
				}
			}
		}
	}()

	// Receive loop: the hello frame may bundle shell events, so it goes
	// through the same path as every later frame.
	go func() {
		frame := first
		for {
			if err := s.applyFrame(sess, frame, send); err != nil {
				errCh <- err
				return
			}
			var rerr error
			frame, rerr = stream.Recv()
			if rerr != nil {
				errCh <- rerr
				return
			}
		}
	}()

	select {
	case <-stream.Context().Done():
		stopSend()
		return stream.Context().Err()
	case <-sess.Done():
		stopSend()
		return status.Error(codes.Aborted, "session closed")
	case err := <-errCh:
		stopSend()
		if err == nil || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
}

// applyFrame applies one client frame to the session and queues the ack for
// output frames.
func (s *Service) applyFrame(sess *session.Session, frame *termcastpb.ClientFrame, send func(*termcastpb.ServerFrame) bool) error {
	id := frame.GetShellId()
	switch {
	case frame.GetOpenShell():
		if err := sess.OpenShell(id, frame.GetRows(), frame.GetCols()); err != nil {
			return streamStatus(err)
		}
	case frame.GetCloseShell():
		return streamStatusOrNil(sess.CloseShell(id))
	case len(frame.GetData()) == 0 && frame.GetRows() > 0 && frame.GetCols() > 0:
		return streamStatusOrNil(sess.Resize(id, frame.GetRows(), frame.GetCols()))
	}
	if len(frame.GetData()) > 0 {
		ack, err := sess.Write(id, frame.GetSeq(), frame.GetData())
		if err != nil {
			return streamStatus(err)
		}
		send(&termcastpb.ServerFrame{ShellId: id, AckSeq: ack})
	}
	return nil
}

func frameFromInput(in session.Input) *termcastpb.ServerFrame {
	frame := &termcastpb.ServerFrame{ShellId: in.ShellID}
	switch in.Kind {
	case session.InputData:
		frame.Data = in.Data
	case session.InputResize:
		frame.Rows = in.Rows
		frame.Cols = in.Cols
	case session.InputOpenShell:
		frame.OpenShell = true
		frame.Rows = in.Rows
		frame.Cols = in.Cols
	}
	return frame
}

func streamStatusOrNil(err error) error {
	if err == nil {
		return nil
	}
	return streamStatus(err)
}

// streamStatus maps session errors onto gRPC status codes.
func streamStatus(err error) error {
	switch {
	case errors.Is(err, session.ErrSessionClosed):
		return status.Error(codes.Aborted, "session closed")
	case errors.Is(err, session.ErrShellNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, session.ErrShellExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, session.ErrTooManyShells):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
