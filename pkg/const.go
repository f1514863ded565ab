package pkg

const HeaderTraceId string = "X-Trace-Id"

// log field keys
const (
	TraceId  string = "trace_id"
	ShareURL string = "share_url"
)

// EnvPrefix is prepended (upper-cased, with an underscore) to every config key read from the environment.
const EnvPrefix = "app"

// UpstreamFailureDetails accompanies every failure that originates in the upstream handshake.
const UpstreamFailureDetails = "Failed to fetch TeraBox data"
