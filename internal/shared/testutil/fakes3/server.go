// Package fakes3 serves a small path-style subset of the S3 REST API from
// memory: ListObjectsV2, HeadObject, GetObject and PutObject. Tests point the
// AWS SDK or minio-go at it through a custom endpoint.
package fakes3

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Object is one stored object
type Object struct {
	Body         []byte
	ContentType  string
	LastModified time.Time
}

// Server is an in-memory S3 endpoint
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	buckets   map[string]map[string]Object
	failures  map[string]int // "bucket/key" -> status; "bucket/" fails listing
	listCalls int
	maxPage   int
}

// New starts a server that is closed when the test ends
func New(t testing.TB) *Server {
	s := &Server{
		buckets:  make(map[string]map[string]Object),
		failures: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Host returns host:port without a scheme, as minio-go expects
func (s *Server) Host() string {
	u, _ := url.Parse(s.URL)
	return u.Host
}

// Put seeds an object
func (s *Server) Put(bucket, key, contentType string, body []byte, modified time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buckets[bucket] == nil {
		s.buckets[bucket] = make(map[string]Object)
	}
	s.buckets[bucket][key] = Object{Body: body, ContentType: contentType, LastModified: modified.UTC()}
}

// Get returns a stored object
func (s *Server) Get(bucket, key string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.buckets[bucket][key]
	return obj, ok
}

// Fail makes every request for bucket/key answer with status.
// An empty key fails listings of the bucket.
func (s *Server) Fail(bucket, key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[bucket+"/"+key] = status
}

// CapPageSize limits pages below the requested max-keys
func (s *Server) CapPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxPage = n
}

// ListCalls reports how many listing requests were served
func (s *Server) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(path, "/")

	s.mu.Lock()
	status, failing := s.failures[bucket+"/"+key]
	s.mu.Unlock()
	if failing {
		writeError(w, status, "AccessDenied", "injected failure")
		return
	}

	switch {
	case r.Method == http.MethodGet && key == "" && r.URL.Query().Get("list-type") == "2":
		s.list(w, r, bucket)
	case r.Method == http.MethodHead:
		s.head(w, bucket, key)
	case r.Method == http.MethodGet:
		s.get(w, bucket, key)
	case r.Method == http.MethodPut && key != "":
		s.put(w, r, bucket, key)
	default:
		writeError(w, http.StatusNotImplemented, "NotImplemented", "unsupported request")
	}
}

type listContents struct {
	Key          string `xml:"Key"`
	LastModified string `xml:"LastModified"`
	ETag         string `xml:"ETag"`
	Size         int64  `xml:"Size"`
	StorageClass string `xml:"StorageClass"`
}

type listResult struct {
	XMLName               xml.Name       `xml:"ListBucketResult"`
	Xmlns                 string         `xml:"xmlns,attr"`
	Name                  string         `xml:"Name"`
	Prefix                string         `xml:"Prefix"`
	KeyCount              int            `xml:"KeyCount"`
	MaxKeys               int            `xml:"MaxKeys"`
	IsTruncated           bool           `xml:"IsTruncated"`
	ContinuationToken     string         `xml:"ContinuationToken,omitempty"`
	NextContinuationToken string         `xml:"NextContinuationToken,omitempty"`
	Contents              []listContents `xml:"Contents"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request, bucket string) {
	q := r.URL.Query()
	prefix := q.Get("prefix")
	maxKeys := 1000
	if v, err := strconv.Atoi(q.Get("max-keys")); err == nil && v > 0 {
		maxKeys = v
	}

	s.mu.Lock()
	s.listCalls++
	if s.maxPage > 0 && s.maxPage < maxKeys {
		maxKeys = s.maxPage
	}
	keys := make([]string, 0)
	for k := range s.buckets[bucket] {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	token := q.Get("continuation-token")
	if token != "" {
		start, _ = strconv.Atoi(token)
	}
	end := start + maxKeys
	if end > len(keys) {
		end = len(keys)
	}

	res := listResult{
		Xmlns:             "http://s3.amazonaws.com/doc/2006-03-01/",
		Name:              bucket,
		Prefix:            prefix,
		MaxKeys:           maxKeys,
		ContinuationToken: token,
	}
	for _, k := range keys[start:end] {
		obj := s.buckets[bucket][k]
		res.Contents = append(res.Contents, listContents{
			Key:          k,
			LastModified: obj.LastModified.Format("2006-01-02T15:04:05.000Z"),
			ETag:         etag(obj.Body),
			Size:         int64(len(obj.Body)),
			StorageClass: "STANDARD",
		})
	}
	s.mu.Unlock()

	res.KeyCount = len(res.Contents)
	if end < len(keys) {
		res.IsTruncated = true
		res.NextContinuationToken = strconv.Itoa(end)
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, xml.Header)
	_ = xml.NewEncoder(w).Encode(res)
}

func (s *Server) head(w http.ResponseWriter, bucket, key string) {
	obj, ok := s.Get(bucket, key)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeObjectHeaders(w, obj)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) get(w http.ResponseWriter, bucket, key string) {
	obj, ok := s.Get(bucket, key)
	if !ok {
		writeError(w, http.StatusNotFound, "NoSuchKey", "The specified key does not exist.")
		return
	}
	writeObjectHeaders(w, obj)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(obj.Body)
}

func (s *Server) put(w http.ResponseWriter, r *http.Request, bucket, key string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "IncompleteBody", err.Error())
		return
	}
	s.Put(bucket, key, r.Header.Get("Content-Type"), body, time.Now())
	w.Header().Set("ETag", etag(body))
	w.WriteHeader(http.StatusOK)
}

func writeObjectHeaders(w http.ResponseWriter, obj Object) {
	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Body)))
	w.Header().Set("Last-Modified", obj.LastModified.Format(http.TimeFormat))
	w.Header().Set("ETag", etag(obj.Body))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, "%s<Error><Code>%s</Code><Message>%s</Message><RequestId>fake</RequestId></Error>", xml.Header, code, message)
}

func etag(body []byte) string {
	sum := md5.Sum(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
