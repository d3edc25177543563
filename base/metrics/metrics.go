/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"

	"github.com/x-xyz/nftmeta/base/env"
	"github.com/x-xyz/nftmeta/base/log"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

var (
	mu     sync.RWMutex
	client statsCli = &LogClient{}
)

// Init points every Service at the datadog agent on host:port. Without a
// host metrics are written to the debug log.
func Init(host string, port int) error {
	if host == "" {
		setClient(&LogClient{})
		return nil
	}
	addr := fmt.Sprintf("%s:%d", host, port)
	c, err := statsd.New(addr)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Error("can't talk to datadog agent")
		return err
	}
	log.Log().WithField("addr", addr).Info("connected to datadog agent")
	setClient(c)
	return nil
}

func setClient(c statsCli) {
	mu.Lock()
	defer mu.Unlock()
	client = c
}

func getClient() statsCli {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// New creates a metric client with pkgName as key prefix
func New(pkgName string) Service {
	tags := []string{"host:"}
	for k, v := range map[string]string{"pod": env.PodName(), "env": env.EnvName(), "app": env.AppName()} {
		if v != "" {
			tags = append(tags, k+":"+v)
		}
	}
	return &Metrics{pkgName: pkgName, tags: tags}
}

type Metrics struct {
	pkgName string
	tags    []string
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + "." + key
}

func (mt *Metrics) tagsWith(tags []string) []string {
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Error("tag length needs to be multiple of 2")
		tags = tags[:len(tags)-1]
	}
	arr := make([]string, 0, len(mt.tags)+len(tags)/2)
	arr = append(arr, mt.tags...)
	for i := 0; i < len(tags); i += 2 {
		arr = append(arr, tags[i]+":"+tags[i+1])
	}
	return arr
}

func (mt *Metrics) report(fn string, key string, err error) {
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "func": fn}).Error("Bump fail")
	}
}

// BumpAvg is sent as a gauge
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	mt.report("BumpAvg", key, getClient().Gauge(mt.key(key), val, mt.tagsWith(tags), 1))
}

func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	mt.report("BumpSum", key, getClient().Count(mt.key(key), int64(val), mt.tagsWith(tags), 1))
}

func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	mt.report("BumpHistogram", key, getClient().Histogram(mt.key(key), val, mt.tagsWith(tags), 1))
}

// BumpTime starts a timer, call End on the result to record it:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{mt: mt, key: key, tags: tags, start: time.Now()}
}

type timeTracker struct {
	mt    *Metrics
	key   string
	tags  []string
	start time.Time
}

func (t *timeTracker) End() {
	ms := float64(time.Since(t.start)) / float64(time.Millisecond)
	t.mt.report("BumpTime", t.key, getClient().TimeInMilliseconds(t.mt.key(t.key), ms, t.mt.tagsWith(t.tags), 1))
}
