// Package knowledge holds Anna's static, curated Arch Linux knowledge pack
// and the keyword search over it. Entries never expire and carry no
// provenance beyond "built in" — they are loaded once at startup and never
// touch disk again.
package knowledge

// Entry is one static knowledge-pack article.
type Entry struct {
	ID    string
	Title string
	Body  string
	Tags  []string
}

// ArchPack is the complete built-in Arch Linux knowledge pack, ported
// verbatim from the original implementation's ARCH_PACK table.
var ArchPack = []Entry{
	{
		ID:    "arch-update",
		Title: "Update Arch Linux system",
		Body: "Run `sudo pacman -Syu` to update the package database and upgrade all packages. " +
			"Use `-Syyu` to force refresh if mirrors were changed. " +
			"For partial updates, use `sudo pacman -Sy <package>` but full system updates are recommended.",
		Tags: []string{"update", "upgrade", "pacman", "packages"},
	},
	{
		ID:    "arch-install",
		Title: "Install a package on Arch",
		Body: "Run `sudo pacman -S <package>` to install a package. " +
			"Use `-S --needed` to skip reinstalling already installed packages. " +
			"For multiple packages: `sudo pacman -S pkg1 pkg2 pkg3`.",
		Tags: []string{"install", "pacman", "package"},
	},
	{
		ID:    "arch-remove",
		Title: "Remove a package from Arch",
		Body: "Run `sudo pacman -R <package>` to remove a package. " +
			"Use `-Rs` to also remove unused dependencies. " +
			"Use `-Rns` to also remove config files (clean removal).",
		Tags: []string{"remove", "uninstall", "pacman", "package"},
	},
	{
		ID:    "arch-search",
		Title: "Search for packages",
		Body: "Run `pacman -Ss <query>` to search remote packages. " +
			"Run `pacman -Qs <query>` to search installed packages. " +
			"Run `pacman -Qi <package>` for detailed package info.",
		Tags: []string{"search", "find", "pacman", "package"},
	},
	{
		ID:    "arch-aur",
		Title: "Using AUR helpers",
		Body: "Use `yay` or `paru` to install AUR packages. Example: `yay -S <package>`. " +
			"These helpers also handle regular pacman operations. " +
			"Install yay: `pacman -S --needed git base-devel && git clone https://aur.archlinux.org/yay.git && cd yay && makepkg -si`.",
		Tags: []string{"aur", "yay", "paru", "helper"},
	},
	{
		ID:    "arch-service-status",
		Title: "Check service status",
		Body: "Run `systemctl status <service>` to check if a service is running. " +
			"Use `systemctl is-active <service>` for a quick check. " +
			"Use `systemctl is-enabled <service>` to check if it starts at boot.",
		Tags: []string{"service", "status", "systemctl", "running"},
	},
	{
		ID:    "arch-service-enable",
		Title: "Enable a service at boot",
		Body: "Run `sudo systemctl enable <service>` to start at boot. " +
			"Use `enable --now` to also start it immediately. " +
			"Common services: sshd, docker, NetworkManager, bluetooth.",
		Tags: []string{"service", "enable", "start", "boot", "autostart"},
	},
	{
		ID:    "arch-failed-services",
		Title: "Find failed services",
		Body: "Run `systemctl --failed` to list all failed units. " +
			"Use `journalctl -u <service>` to see logs for a specific failed service. " +
			"Fix common issues: check config files, dependencies, permissions.",
		Tags: []string{"failed", "services", "broken", "errors"},
	},
	{
		ID:    "arch-logs",
		Title: "View system logs",
		Body: "Run `journalctl -xe` to see recent logs with explanations. " +
			"Use `journalctl -b` for current boot, `-b -1` for previous boot. " +
			"Filter by service: `journalctl -u <service>`. " +
			"Follow live: `journalctl -f`.",
		Tags: []string{"logs", "journal", "journalctl", "debug"},
	},
	{
		ID:    "arch-disk-usage",
		Title: "Check disk usage",
		Body: "Run `df -h` to see disk usage by filesystem. " +
			"Use `du -sh <dir>` to check directory size. " +
			"Install `ncdu` for interactive disk usage analysis: `sudo pacman -S ncdu`.",
		Tags: []string{"disk", "space", "usage", "full", "df"},
	},
	{
		ID:    "arch-clean-cache",
		Title: "Clean package cache",
		Body: "Run `sudo pacman -Sc` to remove old package versions from cache. " +
			"Use `paccache -rk1` to keep only the most recent version. " +
			"Install paccache: `sudo pacman -S pacman-contrib`. " +
			"WARNING: `sudo pacman -Scc` removes ALL cached packages.",
		Tags: []string{"clean", "cache", "pacman", "free", "space"},
	},
	{
		ID:    "arch-mount",
		Title: "Mount an external drive",
		Body: "First identify with `lsblk`. Then: `sudo mount /dev/sdX1 /mnt`. " +
			"For NTFS: `sudo mount -t ntfs3 /dev/sdX1 /mnt`. " +
			"Create mount point if needed: `sudo mkdir /mnt/usb`. " +
			"Unmount: `sudo umount /mnt`.",
		Tags: []string{"mount", "drive", "usb", "external"},
	},
	{
		ID:    "arch-network-status",
		Title: "Check network status",
		Body: "Run `ip addr` to see all network interfaces and IPs. " +
			"Use `ip link` for interface status. " +
			"Test connectivity: `ping -c 3 archlinux.org`. " +
			"Check routes: `ip route`.",
		Tags: []string{"network", "ip", "address", "interface", "connection"},
	},
	{
		ID:    "arch-wifi",
		Title: "Connect to WiFi",
		Body: "With NetworkManager: `nmcli device wifi connect <SSID> password <pass>`. " +
			"List networks: `nmcli device wifi list`. " +
			"With iwd: `iwctl station wlan0 connect <SSID>`. " +
			"Check status: `nmcli connection show`.",
		Tags: []string{"wifi", "wireless", "connect", "nmcli", "iwctl"},
	},
	{
		ID:    "arch-dns",
		Title: "DNS resolution issues",
		Body: "Check `/etc/resolv.conf` for DNS servers. " +
			"Test with `dig <domain>` or `nslookup <domain>`. " +
			"Common fix: add `nameserver 1.1.1.1` to resolv.conf. " +
			"For systemd-resolved: `resolvectl status`.",
		Tags: []string{"dns", "resolve", "hostname", "domain"},
	},
	{
		ID:    "arch-boot-failure",
		Title: "Boot failure troubleshooting",
		Body: "Boot from live USB, mount root partition, and chroot: " +
			"`mount /dev/sdX1 /mnt && arch-chroot /mnt`. " +
			"Check logs: `journalctl -b -1`. " +
			"Regenerate initramfs: `mkinitcpio -P`. " +
			"Reinstall bootloader if needed.",
		Tags: []string{"boot", "fail", "grub", "stuck", "chroot"},
	},
	{
		ID:    "arch-pacman-lock",
		Title: "Pacman database locked",
		Body: "If pacman says database is locked and no other pacman is running: " +
			"`sudo rm /var/lib/pacman/db.lck`. " +
			"Only do this if you're SURE no other pacman process is active. " +
			"Check: `ps aux | grep pacman`.",
		Tags: []string{"lock", "pacman", "database", "locked"},
	},
	{
		ID:    "arch-keyring",
		Title: "Pacman keyring issues",
		Body: "Run `sudo pacman-key --init && sudo pacman-key --populate archlinux`. " +
			"If still failing: `sudo pacman -Sy archlinux-keyring && sudo pacman -Su`. " +
			"For corrupted keyring: `sudo rm -rf /etc/pacman.d/gnupg` then reinit.",
		Tags: []string{"keyring", "signature", "key", "gpg", "trust"},
	},
	{
		ID:    "arch-firewall",
		Title: "Check firewall status",
		Body: "For UFW: `sudo ufw status`. " +
			"For nftables: `sudo nft list ruleset`. " +
			"For iptables: `sudo iptables -L -n`. " +
			"Enable UFW: `sudo ufw enable`.",
		Tags: []string{"firewall", "ufw", "iptables", "nftables"},
	},
	{
		ID:    "arch-sudo",
		Title: "Sudo password issues",
		Body: "If sudo asks for password: enter YOUR user password, not root's. " +
			"Add user to sudoers: `sudo usermod -aG wheel <username>`. " +
			"Edit sudoers safely: `sudo EDITOR=nano visudo`. " +
			"Ensure `%wheel ALL=(ALL:ALL) ALL` is uncommented.",
		Tags: []string{"sudo", "password", "root", "permission", "wheel"},
	},
}
