package irdump

func SetRename(p *Plugin, rename func(oldpath, newpath string) error) {
	p.rename = rename
}
