package socket_io

import (
	"TuneDuel/services/catalog"
	"TuneDuel/services/redis"
	"TuneDuel/services/socket_io/handlers"
	syncpkg "TuneDuel/sync"

	socketio_types "TuneDuel/services/socket_io/types"
	socketio_utils "TuneDuel/services/socket_io/utils"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB,
	redisClient *redis.RedisClient, catalogClient *catalog.Client,
	syncManager *syncpkg.SyncManager) {

	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	// KEY: initialize the map, it panics otherwise
	if sio.UserConnections == nil {
		sio.UserConnections = make(map[string]*socket.Socket)
	}

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated
		success, username, _ := socketio_utils.VerifyUserConnection(client, db)
		if !success {
			return
		}

		// Add connection to map
		(*socketio_types.SocketServer)(sio).AddConnection(username, client)
		log.Printf("[CONNECT] User connected: %s (socket %s)", username, client.Id())

		base := (*socketio_types.SocketServer)(sio)

		// Presence: advertise / withdraw availability for a game type
		client.On("join_lobby", handlers.HandleJoinLobby(redisClient, client, db, username, base))
		client.On("exit_lobby", handlers.HandleExitLobby(redisClient, client, db, username, base))

		// Invites: propose, cancel, accept (single point of session
		// creation), and consume the observed acceptance
		client.On("send_invite", handlers.HandleSendInvite(redisClient, client, db, username, base))
		client.On("cancel_invite", handlers.HandleCancelInvite(redisClient, client, db, username, base))
		client.On("accept_invite", handlers.HandleAcceptInvite(redisClient, client, db, username, base, catalogClient))
		client.On("consume_invite", handlers.HandleConsumeInvite(redisClient, client, db, username, base))

		// Duel protocol: own-subtree writes, shared-record reads
		client.On("join_session", handlers.HandleJoinSession(redisClient, client, db, username))
		client.On("player_update", handlers.HandlePlayerUpdate(redisClient, client, db, username, base))
		client.On("declare_result", handlers.HandleDeclareResult(redisClient, client, db, username, base, syncManager))

		// Higher/lower round sub-protocol
		client.On("round_guess", handlers.HandleRoundGuess(redisClient, client, db, username, base))

		// Taunts: single-consumer queue per recipient
		client.On("send_taunt", handlers.HandleSendTaunt(redisClient, client, db, username, base))
		client.On("consume_taunt", handlers.HandleConsumeTaunt(redisClient, client, db, username))

		// NOTE: will run the armed disconnect hooks and remove the sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(username, base))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	log.Println("Socket server started")
}
