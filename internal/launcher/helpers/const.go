package helpers

import "time"

const (
	// DirMod is the default permission for created directories.
	DirMod = 0o755
	// FileMod is the default permission for created files.
	FileMod = 0o644
	// ExecutableMod is the permission applied to provisioned executables.
	ExecutableMod = 0o755

	// DownloadPermits caps concurrent network transfers per provisioning call.
	// Kept at 8 to avoid rate limiting by the content CDN.
	DownloadPermits = 8

	// VersionManifestURL is the Mojang version manifest endpoint.
	VersionManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	// JavaRuntimesURL is the Mojang Java runtime catalog endpoint.
	JavaRuntimesURL = "https://launchermeta.mojang.com/v1/products/java-runtime/2ec0cc96c44e5a76b9c8b7c39df7210883d12871/all.json"
	// ResourcesBaseURL is the CDN serving asset objects addressed by hash.
	ResourcesBaseURL = "https://resources.download.minecraft.net"

	// VersionManifestCacheFile is the on-disk cache name for the version manifest.
	VersionManifestCacheFile = "version_manifest.json"
	// JavaRuntimesCacheFile is the on-disk cache name for the runtime catalog.
	JavaRuntimesCacheFile = "mojang_java_runtimes.json"
	// VersionInfoCacheDir holds per-version metadata keyed by content sha1.
	VersionInfoCacheDir = "version_info"
	// RuntimeManifestCacheFile is the cached component manifest name.
	RuntimeManifestCacheFile = "manifest.json"

	// LegacyJavaComponent is used when version metadata declares no java component.
	LegacyJavaComponent = "jre-legacy"

	// LauncherName is reported through the launcher_name placeholder.
	LauncherName = "PandoraLauncher"
	// LauncherVersion is reported through the launcher_version placeholder.
	LauncherVersion = "0.1.0"

	// FetchDefaultTimeout is the overall HTTP client timeout.
	FetchDefaultTimeout = 30 * time.Second
	// FetchConnectTimeout is the dial timeout for outbound connections.
	FetchConnectTimeout = 5 * time.Second
	// FetchDialContextKeepAlive is the TCP keep-alive for dials.
	FetchDialContextKeepAlive = 30 * time.Second
	// FetchForceAttemptHTTP2 enables HTTP/2 attempts when possible.
	FetchForceAttemptHTTP2 = true
	// FetchMaxIdleConns is the maximum number of idle connections.
	FetchMaxIdleConns = 100
	// FetchMaxIdleConnsPerHost limits idle connections per host.
	FetchMaxIdleConnsPerHost = 10
	// FetchIdleConnTimeout is the idle connection timeout.
	FetchIdleConnTimeout = 30 * time.Second
	// FetchTLSHandshakeTimeout is the TLS handshake timeout.
	FetchTLSHandshakeTimeout = 3 * time.Second
	// FetchExpectContinueTimeout is the expect-continue timeout.
	FetchExpectContinueTimeout = 1 * time.Second
	// FetchUserAgent identifies the launcher to upstream servers.
	FetchUserAgent = LauncherName + "/" + LauncherVersion

	// InstancesDBFile is the bbolt database holding instance records.
	InstancesDBFile = "instances.db"
	// InstancesDBLock is the launcher directory lock file name.
	InstancesDBLock = ".pandora.lock"
	// InstancesBucket is the bbolt bucket for instance records.
	InstancesBucket = "instances"
)

// JavaExecutableCandidates is the ordered probe list for the provisioned
// java binary inside a runtime component directory.
//
//nolint:gochecknoglobals
var JavaExecutableCandidates = []string{
	"bin/java",
	"bin/javaw.exe",
	"jre.bundle/Contents/Home/bin/java",
	"MinecraftJava.exe",
}
