package wire

import (
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferLimit(t *testing.T) {
	b := NewBuffer(8)
	require.Nil(t, b.Append("abc", "de"))
	require.Nil(t, b.AppendInt(123))
	require.Equal(t, 8, b.Len())

	require.NotNil(t, b.Append("x"))
	require.NotNil(t, b.Appendf("%d", 1))

	_, err := b.String()
	require.NotNil(t, err)
	require.NotNil(t, b.Err())
}

func TestBufferAllOrNothing(t *testing.T) {
	b := NewBuffer(4)
	require.NotNil(t, b.Append("ab", "cde"))
	require.Equal(t, 0, b.Len())
}

func TestQuery(t *testing.T) {
	s, err := NewQuery("/matrix-cgi/osd").Action("set").Add("text", "Gate 1 & 2").AddInt("x", 5).AddBool("clock", true).String()
	require.Nil(t, err)
	require.Equal(t, "/matrix-cgi/osd?action=set&text=Gate+1+%26+2&x=5&clock=on", s)

	_, err = NewQueryLimit("/p", 10).Add("key", "value").String()
	require.NotNil(t, err)
}

func TestRequestParts(t *testing.T) {
	r := Get("/a/b?x=1&y=2")
	require.Equal(t, "/a/b", r.Path())
	require.Equal(t, "x=1&y=2", r.Query())

	r = RTSP("/unicaststream/1")
	require.Equal(t, "/unicaststream/1", r.Path())
	require.Equal(t, "", r.Query())
	require.Equal(t, ProtocolRTSP, r.Protocol)
}

func TestCursorLines(t *testing.T) {
	c := NewCursor([]byte("response-code=0\r\nbitratectrl=cbr\nbitrate=4096\nnoise\n=skip\nmodel=CIDR30FL60CW"))

	v, ok := c.Value("bitrate")
	require.True(t, ok)
	require.Equal(t, "4096", v)

	v, ok = c.Value("response-code")
	require.True(t, ok)
	require.Equal(t, "0", v)

	v, ok = c.Value("model")
	require.True(t, ok)
	require.Equal(t, "CIDR30FL60CW", v)

	_, ok = c.Value("bitrat")
	require.False(t, ok)

	var keys []string
	c.Each(func(k, _ string) bool {
		keys = append(keys, k)
		return true
	})
	require.Equal(t, []string{"response-code", "bitratectrl", "bitrate", "model"}, keys)
}

func TestCursorTags(t *testing.T) {
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<StreamingChannel version="2.0" xmlns="http://www.std-cgi.com/ver20/XMLSchema">
	<id>101</id>
	<Video>
		<tt:videoCodecType>H.264</tt:videoCodecType>
		<videoResolutionWidth>
			1920
		</videoResolutionWidth>
		<empty/>
		<note>a &amp; b</note>
	</Video>
	<Events><Event><Type>VMD</Type></Event><Event><Type>tamper</Type></Event><EventList/></Events>
</StreamingChannel>`
	c := NewCursor([]byte(xml))

	v, ok := c.Tag("videoCodecType")
	require.True(t, ok)
	require.Equal(t, "H.264", v)

	v, ok = c.Tag("videoResolutionWidth")
	require.True(t, ok)
	require.Equal(t, "1920", v)

	v, ok = c.Tag("empty")
	require.True(t, ok)
	require.Equal(t, "", v)

	v, _ = c.Tag("note")
	require.Equal(t, "a & b", v)

	_, ok = c.Tag("missing")
	require.False(t, ok)

	require.Equal(t, []string{"VMD", "tamper"}, c.Tags("Type"))
	require.Len(t, c.Sections("Event"), 2)
	require.Len(t, c.Tags("EventList"), 1)

	video, ok := c.Section("Video")
	require.True(t, ok)
	_, ok = video.Tag("id")
	require.False(t, ok)
}

func TestCursorTruncated(t *testing.T) {
	for _, s := range []string{"<id>10", "<id", "<", "<id>10</id", "</id>", ""} {
		_, ok := NewCursor([]byte(s)).Tag("id")
		require.False(t, ok, s)
	}
	require.Equal(t, []string{"1"}, NewCursor([]byte("<a>1</a><a>2")).Tags("a"))
}

func TestCounterConcurrent(t *testing.T) {
	ids := NewCounter("body-")
	seen := sync.Map{}
	var dups atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, dup := seen.LoadOrStore(ids.NextID(), true); dup {
					dups.Add(1)
				}
			}
		}()
	}
	wg.Wait()
	require.Zero(t, dups.Load())
	require.Equal(t, "body-801", ids.NextID())
}

func TestGenerators(t *testing.T) {
	u := UUIDs{}
	require.NotEqual(t, u.NextID(), u.NextID())
	require.Len(t, u.NextID(), 36)

	r := RandomIDs{Size: 12}
	id := r.NextID()
	require.Len(t, id, 12)
	require.Equal(t, strings.ToLower(id), id)
	require.NotEqual(t, id, r.NextID())
}

func TestFileStager(t *testing.T) {
	s := FileStager{Dir: t.TempDir()}

	ref, err := s.Stage("body-1.xml", []byte("<a/>"))
	require.Nil(t, err)

	b, err := os.ReadFile(ref)
	require.Nil(t, err)
	require.Equal(t, "<a/>", string(b))

	// create-or-truncate
	ref, err = s.Stage("body-1.xml", []byte("<b>"))
	require.Nil(t, err)
	b, _ = os.ReadFile(ref)
	require.Equal(t, "<b>", string(b))

	_, err = FileStager{Dir: "/nonexistent/dir"}.Stage("x", nil)
	require.NotNil(t, err)
}

func TestAttachBody(t *testing.T) {
	stager := &MemoryStager{}
	deps := Deps{IDs: NewCounter("b"), Stager: stager}.WithDefaults()

	req := Request{Method: MethodPut, URL: "/x"}
	require.Nil(t, deps.AttachBody(&req, []byte("<x/>"), "application/xml", ".xml"))
	require.Equal(t, "b1.xml", req.BodyRef)
	require.Equal(t, 4, req.BodyLen)

	b, ok := stager.Load("b1.xml")
	require.True(t, ok)
	require.Equal(t, "<x/>", string(b))

	big := make([]byte, MaxBody+1)
	require.NotNil(t, deps.AttachBody(&req, big, "application/xml", ".xml"))

	_, err := stager.Stage("b1.xml", nil)
	require.NotNil(t, err)
}
