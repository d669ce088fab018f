package ignore

// binaryExtensions is the static denylist of file extensions that are never
// worth fetching for analysis.
var binaryExtensions = map[string]struct{}{
	// Audio
	".mp3": {}, ".wav": {}, ".aac": {}, ".flac": {}, ".ogg": {}, ".wma": {}, ".m4a": {},
	// Video
	".mp4": {}, ".avi": {}, ".mov": {}, ".mkv": {}, ".wmv": {}, ".flv": {},
	".mpeg": {}, ".mpg": {}, ".webm": {},
	// Archives and compressed files
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".7z": {}, ".s7z": {}, ".rar": {},
	".iso": {}, ".cab": {}, ".lz": {}, ".xz": {},
	// Documents (binary formats)
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".odt": {}, ".ods": {}, ".odp": {}, ".epub": {}, ".mobi": {},
	// Executables and system files
	".exe": {}, ".dll": {}, ".com": {}, ".msi": {}, ".bin": {}, ".deb": {}, ".rpm": {},
	".so": {}, ".jar": {}, ".apk": {}, ".app": {}, ".sys": {}, ".drv": {}, ".efi": {},
	".dmg": {}, ".img": {}, ".cpl": {}, ".lnk": {},
	// Fonts
	".ttf": {}, ".otf": {}, ".woff": {}, ".woff2": {}, ".fon": {}, ".icns": {},
	// Compiled or intermediate files
	".pyc": {}, ".class": {}, ".o": {}, ".obj": {}, ".a": {}, ".lib": {},
	// Images
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".tiff": {},
	".ico": {}, ".svg": {}, ".cur": {},
	// Miscellaneous
	".psd": {}, ".indd": {}, ".swf": {}, ".bak": {}, ".cache": {}, ".dat": {},
	".dmp": {}, ".tmp": {}, ".lockb": {},
}

// alwaysAnalyze exempts common plain-text formats from the extension
// denylist, no matter what any ignore rule says about their extension.
var alwaysAnalyze = map[string]struct{}{
	".yml": {}, ".yaml": {}, ".py": {}, ".json": {}, ".sh": {}, ".md": {}, ".txt": {},
}
