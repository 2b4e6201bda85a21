// Package inspect serves the capability database and the request builders
// over HTTP, for checking what the driver would send to a camera
package inspect

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/use-go/camdrv"
	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
	"github.com/use-go/camdrv/pkg/wire"
)

// maxParseBody bounds the response bodies accepted by the parse endpoint
const maxParseBody = 1 << 20

type handler struct {
	drv *camdrv.Driver
	log zerolog.Logger
}

// NewRouter builds the inspector routes. Metrics are served from gatherer
func NewRouter(drv *camdrv.Driver, gatherer prometheus.Gatherer, log zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	h := &handler{drv: drv, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), h.access)

	api := r.Group("/api")
	api.GET("/brands", h.brands)
	api.GET("/brands/:brand/models", h.models)

	model := api.Group("/models/:model")
	model.GET("", h.info)
	model.POST("/stream", h.stream)
	model.GET("/snapshot", h.snapshot)
	model.GET("/events", h.events)
	model.POST("/parse/:op", h.parse)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	return r
}

func (h *handler) access(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.Debug().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("took", time.Since(start)).
		Msg("[inspect]")
}

// fail writes err with the status of its class
func fail(c *gin.Context, err error) {
	status := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, errors.NotFound):
		status = http.StatusNotFound
	case core.ResultOf(err) == core.FeatureNotSupported:
		status = http.StatusNotImplemented
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":  err.Error(),
		"result": core.ResultOf(err).String(),
	})
}

func (h *handler) camera(c *gin.Context) (camdrv.Camera, bool) {
	id, err := capability.ByName(c.Param("model"))
	if err != nil {
		fail(c, err)
		return camdrv.Camera{}, false
	}
	m, err := capability.Info(id)
	if err != nil {
		fail(c, err)
		return camdrv.Camera{}, false
	}
	return camdrv.Camera{Brand: m.Brand, Model: id, Address: c.Query("address")}, true
}

func (h *handler) brands(c *gin.Context) {
	c.JSON(http.StatusOK, capability.Brands())
}

func (h *handler) models(c *gin.Context) {
	brand, err := capability.BrandByName(c.Param("brand"))
	if err != nil {
		fail(c, err)
		return
	}
	list, err := capability.Models(brand)
	if err != nil {
		fail(c, err)
		return
	}
	names := make([]string, 0, len(list))
	for _, m := range list {
		names = append(names, m.Name)
	}
	c.JSON(http.StatusOK, names)
}

type modelView struct {
	capability.ModelInfo
	Group        string   `json:"group"`
	Capabilities []string `json:"capabilities"`
	MainCodecs   []string `json:"main_codecs"`
	SubCodecs    []string `json:"sub_codecs"`
	BitrateMin   int      `json:"bitrate_min_index"`
	BitrateMax   int      `json:"bitrate_max_index"`
}

func codecNames(mask core.CodecMask) []string {
	var names []string
	for _, codec := range mask.List() {
		names = append(names, codec.String())
	}
	return names
}

func (h *handler) info(c *gin.Context) {
	cam, ok := h.camera(c)
	if !ok {
		return
	}
	m, _, err := h.drv.Resolve(cam)
	if err != nil {
		fail(c, err)
		return
	}
	lo, hi := m.BitrateRange()
	c.JSON(http.StatusOK, modelView{
		ModelInfo:    m,
		Group:        m.Group(),
		Capabilities: m.Bits().Names(),
		MainCodecs:   codecNames(m.Codecs(core.StreamMain)),
		SubCodecs:    codecNames(m.Codecs(core.StreamSub)),
		BitrateMin:   lo,
		BitrateMax:   hi,
	})
}

func (h *handler) requests(c *gin.Context, list []wire.Request, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) stream(c *gin.Context) {
	cam, ok := h.camera(c)
	if !ok {
		return
	}
	var req core.StreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.drv.GetStream(cam, req)
	h.requests(c, list, err)
}

func (h *handler) snapshot(c *gin.Context) {
	cam, ok := h.camera(c)
	if !ok {
		return
	}
	list, err := h.drv.GetStillImage(cam)
	h.requests(c, list, err)
}

func (h *handler) events(c *gin.Context) {
	cam, ok := h.camera(c)
	if !ok {
		return
	}
	list, err := h.drv.PollEvents(cam)
	h.requests(c, list, err)
}

// parse runs a response parser over the raw request body
func (h *handler) parse(c *gin.Context) {
	cam, ok := h.camera(c)
	if !ok {
		return
	}

	b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxParseBody))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var v any
	switch c.Param("op") {
	case "events":
		var res core.EventResult
		if res, err = h.drv.ParseEvents(cam, b); err == nil {
			v = res.Map()
		}
	case "streamconfig":
		stream, ok := core.ParseStreamType(c.DefaultQuery("stream", "main"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown stream " + c.Query("stream")})
			return
		}
		v, err = h.drv.ParseStreamConfig(cam, stream, b)
	case "deviceinfo":
		v, err = h.drv.ParseDeviceInfo(cam, b)
	default:
		fail(c, errors.NotFoundf("parser %q", c.Param("op")))
		return
	}

	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
