package service

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	fiberadaptor "github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/theapemachine/jrpc-go/pkg/errors"
	"github.com/theapemachine/jrpc-go/pkg/jsonrpc"
)

/*
HandlerFunc is the caller-supplied method dispatch callback. It receives the
validated extractor and must hand back a terminal response on either arm.
*/
type HandlerFunc func(ctx context.Context, req *jsonrpc.Extractor) jsonrpc.JrpcResult

/*
RPCServer mounts the envelope layer on an HTTP endpoint. It is safe for
concurrent use: the method registry is guarded and each request produces its
own independent extraction/response cycle.
*/
type RPCServer struct {
	app *fiber.App

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

/*
NewRPCServer constructs a server with an empty method registry.
*/
func NewRPCServer(name string) *RPCServer {
	return &RPCServer{
		app: fiber.New(fiber.Config{
			AppName:      name,
			ServerHeader: "JRPC-Server",
		}),
		handlers: make(map[string]HandlerFunc),
	}
}

/*
Register binds a method name to a handler. Registering the same name twice is
a programming error and panics, matching the fail-fast behavior expected of
startup wiring.
*/
func (srv *RPCServer) Register(method string, handler HandlerFunc) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if _, exists := srv.handlers[method]; exists {
		panic("jsonrpc: method already registered: " + method)
	}

	srv.handlers[method] = handler
}

/*
Handler returns the net/http handler for the RPC endpoint, decoupled from the
fiber app so callers can mount it on their preferred mux.
*/
func (srv *RPCServer) Handler() http.Handler {
	return http.HandlerFunc(srv.serveRPC)
}

func (srv *RPCServer) serveRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "only POST supported", http.StatusMethodNotAllowed)
		return
	}

	ex, errResp := jsonrpc.FromHTTPRequest(r)
	if errResp != nil {
		log.Error("request rejected", "error", errResp.Answer.Err())
		writeResponse(w, errResp)
		return
	}

	res := srv.dispatch(r.Context(), ex)

	if res.Failed {
		log.Error("method failed", "method", ex.Method, "id", ex.ID, "error", res.Response.Answer.Err())
	}

	writeResponse(w, res.Response)
}

/*
dispatch looks up the handler for the extracted method and runs it. Handler
panics are recovered into InternalError responses: nothing propagates past
the envelope layer as an uncaught failure.
*/
func (srv *RPCServer) dispatch(ctx context.Context, ex *jsonrpc.Extractor) (res jsonrpc.JrpcResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("handler panic", "method", ex.Method, "panic", r)
			res = jsonrpc.Fail(jsonrpc.Error(
				ex.ID,
				errors.ErrInternal.WithMessagef("handler panic: %v", r),
			))
		}
	}()

	srv.mu.RLock()
	handler, ok := srv.handlers[ex.Method]
	srv.mu.RUnlock()

	if !ok {
		return jsonrpc.Fail(ex.MethodNotFound(ex.Method))
	}

	res = handler(ctx, ex)

	if res.Response == nil {
		res = jsonrpc.Fail(jsonrpc.Error(ex.ID, errors.ErrInternal))
	}

	return res
}

// writeResponse answers with HTTP 200 for every protocol-level outcome;
// JSON-RPC failures live inside the body, not in the status code.
func writeResponse(w http.ResponseWriter, resp *jsonrpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("encode response", "error", err)
	}
}

/*
Start wires the fiber app (request logging, healthcheck, the RPC endpoint)
and listens on addr.
*/
func (srv *RPCServer) Start(addr string) error {
	srv.app.Use(logger.New(), healthcheck.New())
	srv.app.Get("/", srv.handleRoot)
	srv.app.Post("/rpc", srv.handleRPC)
	return srv.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

/*
Shutdown stops the fiber app gracefully.
*/
func (srv *RPCServer) Shutdown() error {
	return srv.app.Shutdown()
}

func (srv *RPCServer) handleRoot(ctx fiber.Ctx) error {
	return ctx.SendString("OK")
}

func (srv *RPCServer) handleRPC(ctx fiber.Ctx) error {
	return fiberadaptor.HTTPHandler(srv.Handler())(ctx)
}
