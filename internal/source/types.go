package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about how a source file was loaded.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 byte order mark was stripped.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF line endings were normalized.
	FileNormalizedCRLF
	// FileDecodedLatin1 indicates the content was transcoded from ISO 8859-1.
	FileDecodedLatin1
)

// File captures metadata and content for a single source file. Content
// is UTF-8 after loading, regardless of the on-disk encoding.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}
