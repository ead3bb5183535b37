package tessgraph

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mjkukula/tessgraph/messages"
	"github.com/mjkukula/tessgraph/subscription"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

func (g *Graph) setupServer() error {
	r := g.server

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/index.html")
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})

	r.GET("/api/series", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"series": g.seriesNames.Values(),
		})
	})

	r.GET("/ws", func(c *gin.Context) {
		ctx := c.Request.Context()

		conn, wsErr := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if wsErr != nil {
			_ = c.AbortWithError(http.StatusInternalServerError, wsErr)
			return
		}

		defer func() {
			_ = conn.Close(websocket.StatusInternalError, "Closed unexpectedly")
		}()

		_, reqBytes, err := conn.Read(ctx)
		if err != nil {
			fmt.Println("ws read error", err.Error())
			return
		}
		conn.CloseRead(ctx)

		var req subscription.Request
		if err := json.Unmarshal(reqBytes, &req); err != nil {
			fmt.Println("ws error", errors.Wrap(err, "unmarshal json"))
			return
		}

		now := time.Now()
		if err := wsjson.Write(ctx, conn, &messages.Data{
			Now: uint64(now.UnixMilli()),
		}); err != nil {
			fmt.Println(errors.Wrap(err, "write timestamp"))
			return
		}

		g.Subscribe(&req, now, func(data *messages.Data) error {
			if err := wsjson.Write(ctx, conn, data); err != nil {
				return errors.Wrap(err, "write data")
			}
			return nil
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return nil
}

func (g *Graph) RunServer(address string) error {
	if err := g.server.Run(address); err != nil {
		return errors.Wrap(err, "run")
	}
	return nil
}

// StaticFiles serves embedded assets, given as alternating name and
// content-type arguments.
func (g *Graph) StaticFiles(fsys fs.FS, files ...string) {
	for i := 0; i < len(files); i += 2 {
		name := files[i]
		ct := files[i+1]
		g.server.GET("/"+name, func(c *gin.Context) {
			header := c.Writer.Header()
			header["Content-Type"] = []string{ct}
			content, err := fs.ReadFile(fsys, name)
			if err != nil {
				c.Status(404)
				return
			}
			_, _ = c.Writer.Write(content)
		})
	}
}
