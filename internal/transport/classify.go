package transport

import (
	"context"
	"errors"
	"net"

	"github.com/freightflow/waybill-client/pkg/waybill"
)

// classifyTransportError maps an exhausted dispatch failure onto the
// transport error taxonomy. Called only after every retry has been spent, so
// the resulting APIError is terminal for this request.
func classifyTransportError(err error) *waybill.APIError {
	switch {
	case errors.Is(err, context.Canceled):
		return &waybill.APIError{
			Kind:    waybill.ErrorKindAbort,
			Message: waybill.MsgRequestCancelled,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return &waybill.APIError{
			Kind:    waybill.ErrorKindTimeout,
			Message: waybill.MsgRequestTimeout,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &waybill.APIError{
			Kind:    waybill.ErrorKindTimeout,
			Message: waybill.MsgRequestTimeout,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &waybill.APIError{
			Kind:    waybill.ErrorKindConnection,
			Message: waybill.MsgNetworkFailure,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &waybill.APIError{
			Kind:    waybill.ErrorKindConnection,
			Message: waybill.MsgNetworkFailure,
		}
	}

	return &waybill.APIError{
		Kind:    waybill.ErrorKindNetwork,
		Message: waybill.MsgNetworkFailure,
	}
}
